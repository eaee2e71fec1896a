package client

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"chain_stats/internal/domain/entity"
	"chain_stats/internal/pkg/metrics"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// defaultPriorityFee is used when the node does not answer eth_maxPriorityFeePerGas.
var defaultPriorityFee = big.NewInt(1_000_000_000) // 1 gwei

// EVMClient implements the port.BlockchainClient interface for EVM-compatible chains.
type EVMClient struct {
	rpcClient      *rpc.Client
	ethClient      *ethclient.Client
	netDef         entity.NetworkDefinition
	rpcCallTimeout time.Duration
}

// ERC20 ABI minimal part for symbol, decimals and balanceOf
const erc20ABI = `[
	{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"payable":false,"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"payable":false,"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"_owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"balance","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"}
]`

var (
	parsedERC20ABI  abi.ABI
	parsedERC20Once sync.Once
)

func initParsedERC20ABI() {
	parsedERC20Once.Do(func() {
		var err error
		parsedERC20ABI, err = abi.JSON(strings.NewReader(erc20ABI))
		if err != nil {
			// This is a critical error during initialization, panic is appropriate
			panic(fmt.Sprintf("failed to parse ERC20 ABI: %v", err))
		}
	})
}

// rpcBlock is the part of an eth_getBlockByNumber response the client reads.
type rpcBlock struct {
	Number        *hexutil.Big   `json:"number"`
	Timestamp     hexutil.Uint64 `json:"timestamp"`
	BaseFeePerGas *hexutil.Big   `json:"baseFeePerGas"`
	Transactions  []common.Hash  `json:"transactions"`
}

// NewEVMClient creates a new EVM client for the given network definition.
// For HTTP endpoints no connection is made until the first call.
func NewEVMClient(ctx context.Context, netDef entity.NetworkDefinition, rpcCallTimeout time.Duration) (*EVMClient, error) {
	initParsedERC20ABI()

	rpcClient, err := rpc.DialContext(ctx, netDef.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC for network %s: %w", netDef.Identifier, err)
	}

	return &EVMClient{
		rpcClient:      rpcClient,
		ethClient:      ethclient.NewClient(rpcClient),
		netDef:         netDef,
		rpcCallTimeout: rpcCallTimeout,
	}, nil
}

// LatestBlock fetches the latest block header summary.
func (c *EVMClient) LatestBlock(ctx context.Context) (summary entity.BlockSummary, err error) {
	defer observeRPC(c.netDef.Identifier, time.Now(), &err)

	block, err := c.latestBlock(ctx)
	if err != nil {
		return entity.BlockSummary{}, err
	}
	return entity.BlockSummary{
		Number:           block.Number.ToInt(),
		Timestamp:        uint64(block.Timestamp),
		TransactionCount: len(block.Transactions),
	}, nil
}

// FeeData fetches the gas price and derives the EIP-1559 fee estimate from the latest block:
// maxFeePerGas = 2 * baseFee + maxPriorityFeePerGas.
func (c *EVMClient) FeeData(ctx context.Context) (fees entity.FeeData, err error) {
	defer observeRPC(c.netDef.Identifier, time.Now(), &err)

	block, err := c.latestBlock(ctx)
	if err != nil {
		return entity.FeeData{}, err
	}
	if block.BaseFeePerGas == nil {
		return entity.FeeData{}, fmt.Errorf("latest block on %s has no base fee", c.netDef.Identifier)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	gasPrice, err := c.ethClient.SuggestGasPrice(callCtx)
	if err != nil {
		return entity.FeeData{}, fmt.Errorf("eth_gasPrice failed: %w", err)
	}

	priorityFee, err := c.ethClient.SuggestGasTipCap(callCtx)
	if err != nil {
		if ctxErr := callCtx.Err(); ctxErr != nil {
			return entity.FeeData{}, fmt.Errorf("eth_maxPriorityFeePerGas failed: %w", ctxErr)
		}
		priorityFee = new(big.Int).Set(defaultPriorityFee)
	}

	maxFee := new(big.Int).Mul(block.BaseFeePerGas.ToInt(), big.NewInt(2))
	maxFee.Add(maxFee, priorityFee)

	return entity.FeeData{
		GasPrice:             gasPrice,
		MaxFeePerGas:         maxFee,
		MaxPriorityFeePerGas: priorityFee,
	}, nil
}

// ProbeToken reads symbol, decimals and balanceOf(wallet) from a token contract
// in a single JSON-RPC batch.
func (c *EVMClient) ProbeToken(ctx context.Context, tokenAddress string, walletAddress string) (probe entity.TokenProbe, err error) {
	defer observeRPC(c.netDef.Identifier, time.Now(), &err)

	symbolData, err := parsedERC20ABI.Pack("symbol")
	if err != nil {
		return entity.TokenProbe{}, fmt.Errorf("failed to pack symbol call: %w", err)
	}
	decimalsData, err := parsedERC20ABI.Pack("decimals")
	if err != nil {
		return entity.TokenProbe{}, fmt.Errorf("failed to pack decimals call: %w", err)
	}
	balanceData, err := parsedERC20ABI.Pack("balanceOf", common.HexToAddress(walletAddress))
	if err != nil {
		return entity.TokenProbe{}, fmt.Errorf("failed to pack balanceOf call: %w", err)
	}

	token := common.HexToAddress(tokenAddress)
	methods := []string{"symbol", "decimals", "balanceOf"}
	batchElems := make([]rpc.BatchElem, len(methods))
	for i, data := range [][]byte{symbolData, decimalsData, balanceData} {
		callArgs := map[string]interface{}{
			"to":   token,
			"data": hexutil.Bytes(data),
		}
		batchElems[i] = rpc.BatchElem{
			Method: "eth_call",
			Args:   []interface{}{callArgs, "latest"},
			Result: new(hexutil.Bytes),
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	if err := c.rpcClient.BatchCallContext(callCtx, batchElems); err != nil {
		return entity.TokenProbe{}, fmt.Errorf("RPC batch call failed: %w", err)
	}

	outputs := make([]hexutil.Bytes, len(batchElems))
	for i, elem := range batchElems {
		if elem.Error != nil {
			return entity.TokenProbe{}, fmt.Errorf("%s call failed: %w", methods[i], elem.Error)
		}
		result, ok := elem.Result.(*hexutil.Bytes)
		if !ok || result == nil {
			return entity.TokenProbe{}, fmt.Errorf("%s call returned an unexpected result type", methods[i])
		}
		outputs[i] = *result
	}

	symbol, err := unpackSingle[string]("symbol", outputs[0])
	if err != nil {
		return entity.TokenProbe{}, err
	}
	decimals, err := unpackSingle[uint8]("decimals", outputs[1])
	if err != nil {
		return entity.TokenProbe{}, err
	}
	balance, err := unpackSingle[*big.Int]("balanceOf", outputs[2])
	if err != nil {
		return entity.TokenProbe{}, err
	}

	return entity.TokenProbe{
		TokenAddress: tokenAddress,
		Symbol:       symbol,
		Decimals:     decimals,
		Balance:      balance,
	}, nil
}

// Definition returns the network definition for this client.
func (c *EVMClient) Definition() entity.NetworkDefinition {
	return c.netDef
}

// Close releases the underlying RPC connection.
func (c *EVMClient) Close() {
	c.rpcClient.Close()
}

func (c *EVMClient) latestBlock(ctx context.Context) (*rpcBlock, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	var block *rpcBlock
	if err := c.rpcClient.CallContext(callCtx, &block, "eth_getBlockByNumber", "latest", false); err != nil {
		return nil, fmt.Errorf("eth_getBlockByNumber failed: %w", err)
	}
	if block == nil {
		return nil, errors.New("latest block not found")
	}
	if block.Number == nil {
		return nil, errors.New("latest block has no number")
	}
	return block, nil
}

// unpackSingle decodes the single return value of an ERC-20 view method.
// Empty return data means the address holds no contract and is reported as an error.
func unpackSingle[T any](method string, data hexutil.Bytes) (T, error) {
	var zero T
	if len(data) == 0 {
		return zero, fmt.Errorf("%s returned no data", method)
	}
	unpacked, err := parsedERC20ABI.Unpack(method, data)
	if err != nil {
		return zero, fmt.Errorf("failed to unpack %s result: %w. Raw: %s", method, err, hexutil.Encode(data))
	}
	if len(unpacked) == 0 {
		return zero, fmt.Errorf("%s unpack returned no data", method)
	}
	value, ok := unpacked[0].(T)
	if !ok {
		return zero, fmt.Errorf("failed to assert unpacked %s result to %T. Got: %T", method, zero, unpacked[0])
	}
	return value, nil
}

func observeRPC(network string, start time.Time, err *error) {
	metrics.ObserveUpstream(metrics.UpstreamRPC, network, start, *err)
}
