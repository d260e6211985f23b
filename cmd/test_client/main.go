package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultEndpoint = "http://localhost:8080/mcp/stream"

func main() {
	ctx := context.Background()

	endpoint := os.Getenv("MCP_URL")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "recruit-dash-test-client",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{Transport: bearerTransport{token: os.Getenv("MCP_TOKEN")}},
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	testListTools(ctx, session)
	testFetchApplicants(ctx, session)
	testApplicantSummary(ctx, session)

	fmt.Println("\nAll tests completed")
}

func testListTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: list tools")

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		log.Printf("list tools failed: %v", err)
		return
	}
	for _, tool := range res.Tools {
		fmt.Printf("  %s: %s\n", tool.Name, tool.Description)
	}
}

func testFetchApplicants(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: fetch_applicants")

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "fetch_applicants",
		Arguments: map[string]any{"limit": 5},
	})
	if err != nil {
		log.Printf("fetch_applicants failed: %v", err)
		return
	}

	printResult(result)
	fmt.Println("fetch_applicants passed")
}

func testApplicantSummary(ctx context.Context, session *mcp.ClientSession) {
	for _, trend := range []string{"weekly", "monthly"} {
		fmt.Printf("\nTEST: applicant_summary (%s)\n", trend)

		result, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "applicant_summary",
			Arguments: map[string]any{"trend": trend},
		})
		if err != nil {
			log.Printf("applicant_summary failed: %v", err)
			return
		}
		printResult(result)
	}

	// an unknown granularity should come back as a tool error
	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "applicant_summary",
		Arguments: map[string]any{"trend": "daily"},
	})
	if err != nil {
		log.Printf("applicant_summary (daily) failed: %v", err)
		return
	}
	if !result.IsError {
		log.Printf("applicant_summary (daily) expected a tool error")
		return
	}
	fmt.Println("applicant_summary passed")
}

// bearerTransport attaches the session token issued by /api/login
type bearerTransport struct {
	token string
}

func (b bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+b.token)
	return http.DefaultTransport.RoundTrip(req)
}

func printResult(res *mcp.CallToolResult) {
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}
