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
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "savex-cli",
		Short: "Savex CLI tool",
		Long:  `A command line interface for interacting with the Savex API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Savex API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Verification code commands
	otpCmd := &cobra.Command{
		Use:   "otp",
		Short: "Verification code operations",
	}

	sendLoginCmd := &cobra.Command{
		Use:   "send-login <email>",
		Short: "Email a login code to an existing account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			post("/send_login_otp", map[string]any{"email": args[0]})
		},
	}

	sendSignupCmd := &cobra.Command{
		Use:   "send-signup <email>",
		Short: "Email a signup code to a new address",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			post("/send_signup_otp", map[string]any{"email": args[0]})
		},
	}

	verifyCmd := &cobra.Command{
		Use:   "verify <email> <code>",
		Short: "Verify a code and print the session token",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			post("/verify_otp", map[string]any{"email": args[0], "otp": args[1]})
		},
	}

	otpCmd.AddCommand(sendLoginCmd, sendSignupCmd, verifyCmd)
	rootCmd.AddCommand(otpCmd)

	// User commands
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User operations",
	}

	getUserCmd := &cobra.Command{
		Use:   "get <email>",
		Short: "Fetch a user profile with transaction history",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/get_user?email=" + url.QueryEscape(args[0]))
		},
	}

	userCmd.AddCommand(getUserCmd)
	rootCmd.AddCommand(userCmd)

	// Ledger commands
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	var (
		category    string
		description string
		manual      bool
	)

	addTxnCmd := &cobra.Command{
		Use:   "add-transaction <email> <amount>",
		Short: "Record a spend against the balance",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			post("/add_transaction", map[string]any{
				"email":       args[0],
				"amount":      json.Number(args[1]),
				"category":    category,
				"description": description,
				"isManual":    manual,
			})
		},
	}
	addTxnCmd.Flags().StringVar(&category, "category", "misc", "Transaction category")
	addTxnCmd.Flags().StringVar(&description, "description", "", "Transaction description")
	addTxnCmd.Flags().BoolVar(&manual, "manual", true, "Mark the entry as manually recorded")

	addMoneyCmd := &cobra.Command{
		Use:   "add-money <email> <amount>",
		Short: "Credit the balance",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			post("/add_money", map[string]any{"email": args[0], "amount": json.Number(args[1])})
		},
	}

	updateBalanceCmd := &cobra.Command{
		Use:   "update-balance <email> <balance>",
		Short: "Overwrite the balance with a reconciled value",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			post("/update_balance", map[string]any{"email": args[0], "new_balance": json.Number(args[1])})
		},
	}

	setBudgetCmd := &cobra.Command{
		Use:   "set-budget <email> <amount>",
		Short: "Set the monthly budget reminder threshold",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			post("/set_budget", map[string]any{"email": args[0], "amount": json.Number(args[1])})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear-history <email>",
		Short: "Delete the transaction log",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			post("/clear_history", map[string]any{"email": args[0]})
		},
	}

	ledgerCmd.AddCommand(addTxnCmd, addMoneyCmd, updateBalanceCmd, setBudgetCmd, clearCmd)
	rootCmd.AddCommand(ledgerCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func get(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func post(path string, payload map[string]any) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
	} else {
		fmt.Println(pretty.String())
	}

	if resp.StatusCode >= http.StatusBadRequest {
		os.Exit(1)
	}
}
