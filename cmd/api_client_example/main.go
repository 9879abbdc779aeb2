package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

func main() {
	fmt.Println("Chargecast API Client Example")
	fmt.Println("=============================")

	// Base URL for the API
	baseURL := "http://localhost:8080"

	// Get the three-day clean-energy averages
	fmt.Println("\nFetching three-day clean-energy averages...")
	prettyGet(fmt.Sprintf("%s/api/v1/generation/three-days", baseURL))

	// Get the optimal charging window for a 2-hour charge
	fmt.Println("\nFetching optimal 2-hour charging window...")
	prettyGet(fmt.Sprintf("%s/api/v1/charge-window?hours=2", baseURL))

	// Request an invalid window length to show the error body
	fmt.Println("\nRequesting an invalid 10-hour window...")
	prettyGet(fmt.Sprintf("%s/api/v1/charge-window?hours=10", baseURL))
}

// prettyGet fetches a URL and pretty prints the JSON response
func prettyGet(url string) {
	resp, err := http.Get(url)
	if err != nil {
		fmt.Printf("Error fetching %s: %v\n", url, err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	// Parse the JSON for pretty printing
	var payload interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		fmt.Printf("Response (status %d): %s\n", resp.StatusCode, string(body))
		return
	}

	prettyJSON, _ := json.MarshalIndent(payload, "", "  ")
	fmt.Printf("Response (status %d):\n%s\n", resp.StatusCode, string(prettyJSON))
}
