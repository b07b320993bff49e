package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yigit/mathplan/internal/pkg/auth"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an advisor token for the planning API",
	Long: `Issue a signed JWT for the planning API.

The signing secret, issuer and lifetime come from the jwt section of the
config file or from JWT_SECRET, JWT_ISSUER and JWT_ACCESS_TOKEN_EXPIRATION.`,
	RunE: runToken,
}

var (
	tokenAdvisor string
	tokenRole    string
	tokenJSON    bool
)

func init() {
	tokenCmd.Flags().StringVar(&tokenAdvisor, "advisor", "", "advisor id stored in the token (required)")
	tokenCmd.Flags().StringVar(&tokenRole, "role", auth.RoleAdvisor, "token role: advisor or admin")
	tokenCmd.Flags().BoolVar(&tokenJSON, "json", false, "Output the token as JSON")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	if tokenAdvisor == "" {
		return fmt.Errorf("--advisor is required")
	}
	if tokenRole != auth.RoleAdvisor && tokenRole != auth.RoleAdmin {
		return fmt.Errorf("unknown role %q: use %s or %s", tokenRole, auth.RoleAdvisor, auth.RoleAdmin)
	}

	secret := viper.GetString("jwt.secret")
	if secret == "" {
		return fmt.Errorf("no signing secret: set jwt.secret or JWT_SECRET")
	}
	lifetime, err := time.ParseDuration(viper.GetString("jwt.access_token_expiration"))
	if err != nil {
		return fmt.Errorf("invalid jwt.access_token_expiration: %w", err)
	}

	svc := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      secret,
		AccessTokenExp: lifetime,
		TokenIssuer:    viper.GetString("jwt.issuer"),
	})
	token, expiresIn, err := svc.GenerateAccessToken(tokenAdvisor, tokenRole)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if tokenJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"accessToken": token,
			"tokenType":   "Bearer",
			"expiresIn":   expiresIn,
			"role":        tokenRole,
		})
	}

	_, err = fmt.Fprintln(out, token)
	return err
}
