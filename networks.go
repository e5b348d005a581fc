package stellarpay

// Network passphrases. The passphrase is mixed into every transaction hash,
// so a signature is only valid for the network it was produced for; build,
// sign, and submit must all agree on it.
const (
	// TestnetPassphrase identifies the SDF test network.
	TestnetPassphrase = "Test SDF Network ; September 2015"

	// PublicPassphrase identifies the public Stellar network.
	PublicPassphrase = "Public Global Stellar Network ; September 2015"
)

// Well-known gateway endpoints.
const (
	// TestnetHorizonURL is the SDF-hosted Horizon instance for the test network.
	TestnetHorizonURL = "https://horizon-testnet.stellar.org"

	// PublicHorizonURL is the SDF-hosted Horizon instance for the public network.
	PublicHorizonURL = "https://horizon.stellar.org"

	// TestnetFriendbotURL funds new test-network accounts.
	TestnetFriendbotURL = "https://friendbot.stellar.org"
)
