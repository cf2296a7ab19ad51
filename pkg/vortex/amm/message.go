package amm

import (
	"bytes"
	"encoding/binary"

	"github.com/ritikbhatt20/vortex/pkg/vortex/common"
)

// Canonical instruction messages. Signatures are verified against these
// byte strings, so the encoding must never change for a given instruction
// tag. Accounts are raw 32 byte public keys, integers are little endian.

type instructionTag uint8

const (
	tagInitializePool instructionTag = iota
	tagAddLiquidity
	tagRemoveLiquidity
	tagSwap
	tagSetPoolPaused
)

func initializePoolMessage(payer, authority *common.Account, accounts *common.PoolAccounts, feeNumerator, feeDenominator uint64) []byte {
	var buf bytes.Buffer

	buf.WriteByte(byte(tagInitializePool))
	buf.Write(common.ProgramAccount.PublicKey().ToBytes())
	buf.Write(payer.PublicKey().ToBytes())
	buf.Write(authority.PublicKey().ToBytes())
	buf.Write(accounts.TokenAMint.PublicKey().ToBytes())
	buf.Write(accounts.TokenBMint.PublicKey().ToBytes())
	writeUint64(&buf, feeNumerator)
	writeUint64(&buf, feeDenominator)

	return buf.Bytes()
}

func addLiquidityMessage(user, pool *common.Account, amountA, amountB, minLiquidity uint64) []byte {
	var buf bytes.Buffer

	buf.WriteByte(byte(tagAddLiquidity))
	buf.Write(common.ProgramAccount.PublicKey().ToBytes())
	buf.Write(user.PublicKey().ToBytes())
	buf.Write(pool.PublicKey().ToBytes())
	writeUint64(&buf, amountA)
	writeUint64(&buf, amountB)
	writeUint64(&buf, minLiquidity)

	return buf.Bytes()
}

func removeLiquidityMessage(user, pool *common.Account, liquidityAmount, minAmountA, minAmountB uint64) []byte {
	var buf bytes.Buffer

	buf.WriteByte(byte(tagRemoveLiquidity))
	buf.Write(common.ProgramAccount.PublicKey().ToBytes())
	buf.Write(user.PublicKey().ToBytes())
	buf.Write(pool.PublicKey().ToBytes())
	writeUint64(&buf, liquidityAmount)
	writeUint64(&buf, minAmountA)
	writeUint64(&buf, minAmountB)

	return buf.Bytes()
}

func swapMessage(user, pool *common.Account, amountIn, minAmountOut uint64, aToB bool) []byte {
	var buf bytes.Buffer

	buf.WriteByte(byte(tagSwap))
	buf.Write(common.ProgramAccount.PublicKey().ToBytes())
	buf.Write(user.PublicKey().ToBytes())
	buf.Write(pool.PublicKey().ToBytes())
	writeUint64(&buf, amountIn)
	writeUint64(&buf, minAmountOut)
	if aToB {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}

	return buf.Bytes()
}

func setPoolPausedMessage(authority, pool *common.Account, paused bool) []byte {
	var buf bytes.Buffer

	buf.WriteByte(byte(tagSetPoolPaused))
	buf.Write(common.ProgramAccount.PublicKey().ToBytes())
	buf.Write(authority.PublicKey().ToBytes())
	buf.Write(pool.PublicKey().ToBytes())
	if paused {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}

	return buf.Bytes()
}

func writeUint64(buf *bytes.Buffer, value uint64) {
	var encoded [8]byte
	binary.LittleEndian.PutUint64(encoded[:], value)
	buf.Write(encoded[:])
}
