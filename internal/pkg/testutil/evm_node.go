// Package testutil provides in-process fakes of the upstream services for tests.
package testutil

import (
	"bytes"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const erc20ABI = `[
	{"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"account","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

var parsedABI = func() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		panic(err)
	}
	return parsed
}()

// ERC20Contract is a fake token deployed on an EVMNode.
type ERC20Contract struct {
	Symbol   string
	Decimals uint8
	// Balances is keyed by lower-case 0x-prefixed wallet address; missing wallets hold zero.
	Balances map[string]*big.Int
	// Revert lists the methods ("symbol", "decimals", "balanceOf") that fail with an execution error.
	Revert map[string]bool
}

// EVMNode is a fake JSON-RPC node answering the calls the chain client issues.
// Configure the exported fields before the first request.
type EVMNode struct {
	BlockNumber uint64
	Timestamp   uint64
	TxCount     int
	BaseFee     *big.Int // nil serves a block without baseFeePerGas
	GasPrice    *big.Int
	TipCap      *big.Int // nil makes eth_maxPriorityFeePerGas unsupported
	FailBlock   bool     // eth_getBlockByNumber returns an error

	server    *httptest.Server
	contracts map[string]*ERC20Contract
	mu        sync.Mutex
	calls     map[string]int
}

type rpcRequest struct {
	ID     jsoniter.RawMessage   `json:"id"`
	Method string                `json:"method"`
	Params []jsoniter.RawMessage `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string              `json:"jsonrpc"`
	ID      jsoniter.RawMessage `json:"id"`
	Result  interface{}         `json:"result,omitempty"`
	Error   *rpcError           `json:"error,omitempty"`
}

// NewEVMNode starts a fake node with an EIP-1559 latest block. It is closed when the test ends.
func NewEVMNode(t testing.TB) *EVMNode {
	t.Helper()
	n := &EVMNode{
		BlockNumber: 19_000_000,
		Timestamp:   1_700_000_000,
		TxCount:     3,
		BaseFee:     big.NewInt(10_000_000_000),
		GasPrice:    big.NewInt(12_345_600_000),
		TipCap:      big.NewInt(1_500_000_000),
		contracts:   make(map[string]*ERC20Contract),
		calls:       make(map[string]int),
	}
	n.server = httptest.NewServer(http.HandlerFunc(n.serveHTTP))
	t.Cleanup(n.server.Close)
	return n
}

// URL returns the node's JSON-RPC endpoint.
func (n *EVMNode) URL() string {
	return n.server.URL
}

// Deploy registers a token contract at address.
func (n *EVMNode) Deploy(address string, contract *ERC20Contract) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.contracts[strings.ToLower(address)] = contract
}

// Calls returns how many times method was called.
func (n *EVMNode) Calls(method string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[method]
}

// TotalCalls returns the number of JSON-RPC calls served, counting batch members individually.
func (n *EVMNode) TotalCalls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	total := 0
	for _, count := range n.calls {
		total += count
	}
	return total
}

func (n *EVMNode) serveHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")

	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var reqs []rpcRequest
		if err := json.Unmarshal(body, &reqs); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resps := make([]rpcResponse, 0, len(reqs))
		for _, req := range reqs {
			resps = append(resps, n.handle(req))
		}
		_ = json.NewEncoder(w).Encode(resps)
		return
	}

	var req rpcRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(n.handle(req))
}

func (n *EVMNode) handle(req rpcRequest) rpcResponse {
	n.mu.Lock()
	n.calls[req.Method]++
	n.mu.Unlock()

	resp := rpcResponse{JSONRPC: "2.0", ID: req.ID}
	switch req.Method {
	case "eth_getBlockByNumber":
		if n.FailBlock {
			resp.Error = &rpcError{Code: -32000, Message: "header not found"}
			return resp
		}
		resp.Result = n.block()
	case "eth_gasPrice":
		resp.Result = (*hexutil.Big)(n.GasPrice)
	case "eth_maxPriorityFeePerGas":
		if n.TipCap == nil {
			resp.Error = &rpcError{Code: -32601, Message: "the method eth_maxPriorityFeePerGas does not exist/is not available"}
			return resp
		}
		resp.Result = (*hexutil.Big)(n.TipCap)
	case "eth_call":
		result, err := n.call(req.Params)
		if err != nil {
			resp.Error = &rpcError{Code: 3, Message: err.Error()}
			return resp
		}
		resp.Result = result
	default:
		resp.Error = &rpcError{Code: -32601, Message: fmt.Sprintf("the method %s does not exist/is not available", req.Method)}
	}
	return resp
}

func (n *EVMNode) block() map[string]interface{} {
	txs := make([]common.Hash, n.TxCount)
	for i := range txs {
		txs[i] = common.BigToHash(big.NewInt(int64(i + 1)))
	}
	block := map[string]interface{}{
		"number":       hexutil.Uint64(n.BlockNumber),
		"timestamp":    hexutil.Uint64(n.Timestamp),
		"transactions": txs,
	}
	if n.BaseFee != nil {
		block["baseFeePerGas"] = (*hexutil.Big)(n.BaseFee)
	}
	return block
}

func (n *EVMNode) call(params []jsoniter.RawMessage) (hexutil.Bytes, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("missing call object")
	}
	var callObj struct {
		To   string        `json:"to"`
		Data hexutil.Bytes `json:"data"`
	}
	if err := json.Unmarshal(params[0], &callObj); err != nil {
		return nil, err
	}

	n.mu.Lock()
	contract, ok := n.contracts[strings.ToLower(callObj.To)]
	n.mu.Unlock()
	if !ok {
		// Calls to an address without code succeed with empty return data.
		return hexutil.Bytes{}, nil
	}
	if len(callObj.Data) < 4 {
		return nil, fmt.Errorf("execution reverted")
	}

	method, err := parsedABI.MethodById(callObj.Data[:4])
	if err != nil {
		return nil, fmt.Errorf("execution reverted")
	}
	if contract.Revert[method.Name] {
		return nil, fmt.Errorf("execution reverted")
	}

	switch method.Name {
	case "symbol":
		return method.Outputs.Pack(contract.Symbol)
	case "decimals":
		return method.Outputs.Pack(contract.Decimals)
	case "balanceOf":
		args, err := method.Inputs.Unpack(callObj.Data[4:])
		if err != nil {
			return nil, err
		}
		wallet := strings.ToLower(args[0].(common.Address).Hex())
		balance, ok := contract.Balances[wallet]
		if !ok {
			balance = big.NewInt(0)
		}
		return method.Outputs.Pack(balance)
	}
	return nil, fmt.Errorf("execution reverted")
}
