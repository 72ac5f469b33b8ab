package constants

import "time"

// Algorithm identifiers accepted on the command line and in config
const (
	AlgorithmAES      = "aes"
	AlgorithmChaCha20 = "chacha20"
	AlgorithmFernet   = "fernet"
	AlgorithmCaesar   = "caesar"
)

// Key and framing sizes
const (
	AESKeySize        = 32
	AESIVSize         = 16
	ImageChaChaNonce  = 8
	TextChaChaNonce   = 12
	EnvelopeLenPrefix = 4
	PasswordHashSize  = 32

	DefaultRSAKeyBits = 4096
	MinRSAKeyBits     = 2048
	RSAPublicExponent = 65537
)

// Key derivation
const (
	PBKDF2Iterations = 100000
	PBKDF2SaltSize   = 16
	CaesarShift      = 3

	// MinCipherPasswordLength applies to password-derived text modes
	MinCipherPasswordLength = 6
)

// File naming conventions
const (
	EnvelopeSuffix      = ".rsa.enc"
	DecryptedSuffix     = ".dec"
	PrivateKeySuffix    = "_private.pem"
	PublicKeySuffix     = "_public.pem"
	PEMExtension        = ".pem"
	PasswordHashSuffix  = ".hash"
	ConfigFileName      = ".cipherdesk.yaml"
	PasswordEnvVariable = "CIPHERDESK_PASSWORD"
)

// Breach lookup
const (
	DefaultBreachEndpoint  = "https://api.pwnedpasswords.com"
	DefaultBreachUserAgent = "PasswordAnalyzer"
	BreachPrefixLength     = 5
	MinBreachPasswordLen   = 6
	DefaultBreachTimeout   = 5 * time.Second
	BreachMinInterval      = 1500 * time.Millisecond
)

// Password analysis
const (
	// ASCIIPunctuation is the default special-character pool.
	ASCIIPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

	MinPasswordLength         = 8
	RecommendedPasswordLength = 12
	MinGeneratedLength        = 4
	DefaultGeneratedLength    = 12
)

// File permissions
const (
	SecureDirPerms    = 0o700 // Owner read/write/execute only
	SecureFilePerms   = 0o600 // Owner read/write only
	StandardDirPerms  = 0o755 // Standard directory permissions
	StandardFilePerms = 0o644 // Standard file permissions
)
