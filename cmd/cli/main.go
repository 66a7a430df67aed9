package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fr76/bankledger/internal/domain"
	"github.com/fr76/bankledger/internal/infrastructure/auth"
)

var (
	baseURL     string
	timeout     time.Duration
	bearerToken string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bankctl",
		Short: "Bank ledger CLI tool",
		Long:  `A command line interface for the bank ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&bearerToken, "token", os.Getenv("BANKLEDGER_TOKEN"), "Bearer token")

	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account operations",
	}

	var firstName, lastName string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Open a new account",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/accounts", map[string]string{
				"first_name": firstName,
				"last_name":  lastName,
			})
		},
	}
	createCmd.Flags().StringVar(&firstName, "first-name", "", "Owner first name")
	createCmd.Flags().StringVar(&lastName, "last-name", "", "Owner last name")
	createCmd.MarkFlagRequired("first-name")
	createCmd.MarkFlagRequired("last-name")

	getCmd := &cobra.Command{
		Use:   "get <account-id>",
		Short: "Show an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/accounts/"+args[0], nil)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List your accounts",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/accounts", nil)
		},
	}

	accountsCmd.AddCommand(createCmd, getCmd, listCmd)

	depositCmd := &cobra.Command{
		Use:   "deposit <account-id> <amount>",
		Short: "Deposit money into an account",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/accounts/"+args[0]+"/deposit", map[string]string{
				"amount": args[1],
			})
		},
	}

	withdrawCmd := &cobra.Command{
		Use:   "withdraw <account-id> <amount>",
		Short: "Withdraw money from an account",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/accounts/"+args[0]+"/withdraw", map[string]string{
				"amount": args[1],
			})
		},
	}

	var txType, txFrom, txTo string
	transactionsCmd := &cobra.Command{
		Use:   "transactions <account-id>",
		Short: "List an account's transactions",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			query := url.Values{}
			if txType != "" {
				query.Set("type", txType)
			}
			if txFrom != "" {
				query.Set("from", txFrom)
			}
			if txTo != "" {
				query.Set("to", txTo)
			}

			path := "/api/v1/accounts/" + args[0] + "/transactions"
			if len(query) > 0 {
				path += "?" + query.Encode()
			}
			doRequest(http.MethodGet, path, nil)
		},
	}
	transactionsCmd.Flags().StringVar(&txType, "type", "", "Filter by type (deposit|withdrawal)")
	transactionsCmd.Flags().StringVar(&txFrom, "from", "", "Start date (RFC 3339)")
	transactionsCmd.Flags().StringVar(&txTo, "to", "", "End date (RFC 3339)")

	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrator operations",
	}

	adminCmd.AddCommand(
		&cobra.Command{
			Use:   "accounts",
			Short: "List all accounts",
			Run: func(cmd *cobra.Command, args []string) {
				doRequest(http.MethodGet, "/api/v1/admin/accounts", nil)
			},
		},
		&cobra.Command{
			Use:   "deactivated",
			Short: "List deactivated accounts",
			Run: func(cmd *cobra.Command, args []string) {
				doRequest(http.MethodGet, "/api/v1/admin/accounts/deactivated", nil)
			},
		},
		&cobra.Command{
			Use:   "deactivate <account-id>",
			Short: "Deactivate an account",
			Args:  cobra.ExactArgs(1),
			Run: func(cmd *cobra.Command, args []string) {
				doRequest(http.MethodPost, "/api/v1/admin/accounts/"+args[0]+"/deactivate", nil)
			},
		},
		&cobra.Command{
			Use:   "reactivate <account-id>",
			Short: "Reactivate an account",
			Args:  cobra.ExactArgs(1),
			Run: func(cmd *cobra.Command, args []string) {
				doRequest(http.MethodPost, "/api/v1/admin/accounts/"+args[0]+"/reactivate", nil)
			},
		},
	)

	var tokenUser, tokenEmail, tokenRole string
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development token (requires JWT_SECRET)",
		Run: func(cmd *cobra.Command, args []string) {
			secret := os.Getenv("JWT_SECRET")
			if secret == "" {
				fmt.Fprintln(os.Stderr, "JWT_SECRET is not set")
				os.Exit(1)
			}

			manager := auth.NewJWTManager(secret, 24*time.Hour)
			token, err := manager.Generate(tokenUser, tokenEmail, domain.Role(tokenRole))
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to generate token: %v\n", err)
				os.Exit(1)
			}

			fmt.Println(token)
		},
	}
	tokenCmd.Flags().StringVar(&tokenUser, "user", "local-admin", "User ID claim")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "Email claim")
	tokenCmd.Flags().StringVar(&tokenRole, "role", string(domain.RoleAdmin), "Role claim (client|admin)")

	rootCmd.AddCommand(accountsCmd, depositCmd, withdrawCmd, transactionsCmd, adminCmd, tokenCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// doRequest performs the API call and pretty-prints the JSON response.
func doRequest(method, path string, payload map[string]string) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode request: %v\n", err)
			os.Exit(1)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build request: %v\n", err)
		os.Exit(1)
	}

	req.Header.Set("Content-Type", "application/json")
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, respBody, "", "  "); err != nil {
		fmt.Println(string(respBody))
	} else {
		fmt.Println(pretty.String())
	}

	if resp.StatusCode >= 400 {
		fmt.Fprintf(os.Stderr, "request failed with status %d\n", resp.StatusCode)
		os.Exit(1)
	}
}
