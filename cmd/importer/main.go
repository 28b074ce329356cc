package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"customer-directory/internal/client"
	"customer-directory/internal/importer"
	"customer-directory/internal/logx"
	"github.com/spf13/pflag"
)

func main() {
	var (
		filePath string
		baseURL  string
		timeout  time.Duration
	)
	flags := pflag.NewFlagSet("importer", pflag.ExitOnError)
	flags.StringVar(&filePath, "file", "", "path to customer CSV export")
	flags.StringVar(&baseURL, "base-url", "http://localhost:5001", "base URL of a running customer directory")
	flags.DurationVar(&timeout, "timeout", 2*time.Minute, "overall import deadline")
	_ = flags.Parse(os.Args[1:])

	if filePath == "" {
		flags.Usage()
		os.Exit(2)
	}

	logger := logx.New("customer-importer", logx.Config{})

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("open file")
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	imp := importer.NewCSVImporter(f, client.New(baseURL, nil))

	start := time.Now()
	res, err := imp.Run(ctx)
	if err != nil {
		logger.Fatal().Err(err).
			Int("customers", res.Customers).
			Int("addresses", res.Addresses).
			Int("payment_methods", res.PaymentMethods).
			Msg("import failed")
	}

	fmt.Printf("Imported %d customers, %d addresses, %d payment methods into %s in %s\n",
		res.Customers, res.Addresses, res.PaymentMethods, baseURL, time.Since(start).Truncate(time.Millisecond))
}
