// Package client provides test commands for the DX3rd rules gRPC service
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/dx3rd-api/internal/errors"
	"github.com/KirkDiggler/dx3rd-api/internal/handlers/dx3rd/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client test commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Test client commands for the DX3rd rules service",
	Long:  `Client commands allow you to exercise the rules service by making real gRPC requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(sweepCmd)

	// Combat commands
	ClientCmd.AddCommand(weaponsCmd)
	ClientCmd.AddCommand(aggregateCmd)
	ClientCmd.AddCommand(consumeAttackCmd)

	// Overflow selection commands
	ClientCmd.AddCommand(overflowCmd)

	// Sheet commands
	ClientCmd.AddCommand(setFieldCmd)
	ClientCmd.AddCommand(toggleEquipmentCmd)
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

// call sends one request and prints the response as JSON
func call(method string, body interface{}) error {
	req, err := v1alpha1.Encode(body)
	if err != nil {
		return err
	}

	conn, err := createConnection()
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp := &structpb.Struct{}
	if err := conn.Invoke(ctx, v1alpha1.FullMethod(method), req, resp); err != nil {
		return describe(method, err)
	}

	out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// describe turns a status error into a message that names the rule reason
func describe(method string, err error) error {
	converted := errors.FromGRPCError(err)
	if reason := errors.GetReason(converted); reason != "" {
		return fmt.Errorf("%s failed (%s): %s", method, reason, errors.GetMessage(converted))
	}
	return fmt.Errorf("%s failed: %w", method, err)
}
