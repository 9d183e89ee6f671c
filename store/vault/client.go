package vault

import (
	"fmt"
	"net/http"
	"os"

	"github.com/hashicorp/vault/api"
)

// newClient creates a Vault client from the environment.
//
// Environment Variables:
//   - VAULT_ADDR: Vault server address (required)
//   - VAULT_NAMESPACE: namespace for HCP Vault (optional)
//   - VAULT_TOKEN: token authentication
//   - VAULT_ROLE_ID, VAULT_SECRET_ID: AppRole authentication, used when no token is set
func newClient() (*api.Client, error) {
	config := api.DefaultConfig()
	if addr := os.Getenv("VAULT_ADDR"); addr != "" {
		config.Address = addr
	}
	if config.Address == "" {
		return nil, fmt.Errorf("%w: VAULT_ADDR environment variable is required", ErrUnavailable)
	}
	config.HttpClient.Transport = &http.Transport{
		Proxy: http.ProxyFromEnvironment,
	}

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Vault client: %w", ErrUnavailable, err)
	}
	if namespace := os.Getenv("VAULT_NAMESPACE"); namespace != "" {
		client.SetNamespace(namespace)
	}

	if token := os.Getenv("VAULT_TOKEN"); token != "" {
		client.SetToken(token)
		return client, nil
	}

	roleID := os.Getenv("VAULT_ROLE_ID")
	secretID := os.Getenv("VAULT_SECRET_ID")
	if roleID == "" || secretID == "" {
		return nil, fmt.Errorf("%w: no Vault authentication method configured (set VAULT_TOKEN or VAULT_ROLE_ID+VAULT_SECRET_ID)", ErrUnavailable)
	}

	resp, err := client.Logical().Write("auth/approle/login", map[string]interface{}{
		"role_id":   roleID,
		"secret_id": secretID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to login with AppRole: %w", ErrUnavailable, err)
	}
	if resp == nil || resp.Auth == nil {
		return nil, fmt.Errorf("%w: no auth info returned from AppRole login", ErrUnavailable)
	}
	client.SetToken(resp.Auth.ClientToken)
	return client, nil
}
