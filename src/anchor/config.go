// Package anchor mirrors accepted verification outcomes onto Solana. Each
// outcome is written into a fresh rent-exempt account owned by the anchor
// program, giving third parties a chain-readable audit trail.
package anchor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/miromero13/certeth/pkg/logger"
)

type Keys struct {
	ProgramPublicKey solana.PublicKey
	PayerPublicKey   solana.PublicKey
	PayerPrivateKey  solana.PrivateKey
}

type SharedSolanaConfig struct {
	Mu   sync.Mutex
	Keys *Keys
}

func LoadSolanaKeys() (*SharedSolanaConfig, error) {
	programIDStr := os.Getenv("ANCHOR_PROGRAM_ID")
	if programIDStr == "" {
		return nil, fmt.Errorf("ANCHOR_PROGRAM_ID env var is not set")
	}
	programID, err := solana.PublicKeyFromBase58(programIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid ANCHOR_PROGRAM_ID %q: %w", programIDStr, err)
	}

	keypairPath := os.Getenv("ANCHOR_PAYER_KEYPAIR_PATH")
	if keypairPath == "" {
		homeDir, _ := os.UserHomeDir()
		keypairPath = filepath.Join(homeDir, ".certeth", "solana", "id.json")
	}
	payerPriv, err := solana.PrivateKeyFromSolanaKeygenFile(keypairPath)
	if err != nil {
		return nil, fmt.Errorf("reading payer keypair from %s failed: %w", keypairPath, err)
	}

	keys := &Keys{
		ProgramPublicKey: programID,
		PayerPublicKey:   payerPriv.PublicKey(),
		PayerPrivateKey:  payerPriv,
	}

	logger.Default().Debugf("Anchor program: %s", keys.ProgramPublicKey.String())
	logger.Default().Debugf("Anchor payer: %s", keys.PayerPublicKey.String())

	return &SharedSolanaConfig{Keys: keys}, nil
}

func (sc *SharedSolanaConfig) ValidateProgramExecutable(ctx context.Context, rpcClient *rpc.Client) error {
	acc, err := rpcClient.GetAccountInfo(ctx, sc.Keys.ProgramPublicKey)
	if err != nil {
		return fmt.Errorf("GetAccountInfo(program) failed: %w", err)
	}
	if acc == nil || acc.Value == nil || !acc.Value.Executable {
		return fmt.Errorf("anchor program %s is not an executable account", sc.Keys.ProgramPublicKey)
	}
	return nil
}
