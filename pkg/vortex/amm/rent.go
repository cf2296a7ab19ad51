package amm

// Mainnet rent parameters. Pool initialization charges the payer the
// rent-exempt minimum for every account it creates.
const (
	lamportsPerByteYear    = 3480
	rentExemptionYears     = 2
	accountStorageOverhead = 128

	// Serialized account sizes, including the 8 byte discriminator where
	// the account carries one
	poolAccountSize  = 428
	tokenAccountSize = 165
	mintAccountSize  = 82
)

// rentExemptMinimum gets the minimum balance an account of the given data
// size must hold to be exempt from rent collection.
func rentExemptMinimum(dataSize uint64) uint64 {
	return (dataSize + accountStorageOverhead) * lamportsPerByteYear * rentExemptionYears
}

// poolCreationCost gets the total lamports required to initialize a pool:
// the pool state account, both token vaults, and the LP mint.
func poolCreationCost() uint64 {
	return rentExemptMinimum(poolAccountSize) +
		2*rentExemptMinimum(tokenAccountSize) +
		rentExemptMinimum(mintAccountSize)
}
