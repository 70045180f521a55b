package cmd

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/liftdesk/liftdesk/internal/config"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Long: `Show the persisted session: the account email, when it was saved, and
any claims readable from the token.

Claims are displayed without verification and purely for operator
convenience. The server remains the sole authority on whether the token
is still accepted.`,
	RunE: runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	logger := newLogger(cfg)
	defer func() { _ = logger.Close() }()

	manager := newManager(logger)
	sess, err := manager.Current()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if sess == nil {
		fmt.Fprintln(out, "Not logged in.")
		return nil
	}

	fmt.Fprintf(out, "Email:    %s\n", sess.Email)
	fmt.Fprintf(out, "Saved at: %s\n", sess.SavedAt.Format(time.RFC3339))
	fmt.Fprintf(out, "Token:    %s\n", tokenFingerprint(sess.Token))
	fmt.Fprintf(out, "Session:  %s\n", config.SessionFile())

	claims := tokenClaims(sess.Token)
	if claims == nil {
		return nil
	}
	if sub, ok := claims["sub"]; ok {
		fmt.Fprintf(out, "Subject:  %v\n", sub)
	}
	if exp := claimTime(claims, "exp"); !exp.IsZero() {
		fmt.Fprintf(out, "Expires:  %s\n", exp.Format(time.RFC3339))
	}
	if iat := claimTime(claims, "iat"); !iat.IsZero() {
		fmt.Fprintf(out, "Issued:   %s\n", iat.Format(time.RFC3339))
	}
	return nil
}

// tokenFingerprint renders a short digest of the token so sessions can be
// compared without printing the credential itself.
func tokenFingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "sha256:" + hex.EncodeToString(sum[:6])
}

// tokenClaims decodes the token's claims without verifying the signature.
// Opaque (non-JWT) tokens yield nil.
func tokenClaims(token string) jwt.MapClaims {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	return claims
}

// claimTime reads a numeric-date claim like exp or iat.
func claimTime(claims jwt.MapClaims, key string) time.Time {
	v, ok := claims[key]
	if !ok {
		return time.Time{}
	}
	sec, ok := v.(float64)
	if !ok {
		return time.Time{}
	}
	return time.Unix(int64(sec), 0)
}
