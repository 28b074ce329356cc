package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"customer-directory/internal/domain"
)

// DirectoryWriter is the subset of the directory API the importer drives.
type DirectoryWriter interface {
	CreateCustomer(ctx context.Context, c domain.Customer, password string) (*domain.Customer, error)
	AddAddress(ctx context.Context, customerID string, a domain.Address) (*domain.Address, error)
	AddPaymentMethod(ctx context.Context, customerID string, pm domain.PaymentMethod) (*domain.PaymentMethod, error)
}

// Result counts the records created by a run.
type Result struct {
	Customers      int
	Addresses      int
	PaymentMethods int
}

// CSVImporter reads customer exports and replays them against a directory.
type CSVImporter struct {
	reader *csv.Reader
	writer DirectoryWriter
}

func NewCSVImporter(r io.Reader, w DirectoryWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader: csvr,
		writer: w,
	}
}

type csvRow struct {
	line     int
	customer domain.Customer
	password string
	address  domain.Address
	card     domain.PaymentMethod
}

func (r csvRow) hasAddress() bool {
	return r.address.StreetAddress != ""
}

func (r csvRow) hasCard() bool {
	return r.card.CardNumber != ""
}

// Run creates customers row by row. Rows without a username continue the previous
// customer; a card on a row is billed to the address on that same row.
func (i *CSVImporter) Run(ctx context.Context) (Result, error) {
	var res Result

	headers, err := i.reader.Read()
	if err != nil {
		return res, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	var current *domain.Customer
	for line := 2; ; line++ {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read row: %w", err)
		}

		row := parseRow(record, index)
		row.line = line

		if row.customer.Username != "" {
			created, err := i.writer.CreateCustomer(ctx, row.customer, row.password)
			if err != nil {
				return res, fmt.Errorf("line %d: create customer %q: %w", line, row.customer.Username, err)
			}
			current = created
			res.Customers++
		}
		if current == nil {
			return res, fmt.Errorf("line %d: continuation row before any customer", line)
		}
		if err := i.saveChildren(ctx, current.ID, row, &res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (i *CSVImporter) saveChildren(ctx context.Context, customerID string, row csvRow, res *Result) error {
	if row.hasCard() && !row.hasAddress() {
		return fmt.Errorf("line %d: card without a billing address on the same row", row.line)
	}
	if !row.hasAddress() {
		return nil
	}
	addr, err := i.writer.AddAddress(ctx, customerID, row.address)
	if err != nil {
		return fmt.Errorf("line %d: add address: %w", row.line, err)
	}
	res.Addresses++

	if !row.hasCard() {
		return nil
	}
	card := row.card
	card.BillingAddressID = addr.ID
	if _, err := i.writer.AddPaymentMethod(ctx, customerID, card); err != nil {
		return fmt.Errorf("line %d: add payment method: %w", row.line, err)
	}
	res.PaymentMethods++
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) csvRow {
	return csvRow{
		customer: domain.Customer{
			Username:  pick(record, index, "username"),
			Email:     pick(record, index, "email"),
			FirstName: pick(record, index, "firstName"),
			LastName:  pick(record, index, "lastName"),
		},
		password: pick(record, index, "password"),
		address: domain.Address{
			StreetAddress: pick(record, index, "streetAddress"),
			City:          pick(record, index, "city"),
			State:         pick(record, index, "state"),
			ZipCode:       pick(record, index, "zipCode"),
			Country:       pick(record, index, "country"),
		},
		card: domain.PaymentMethod{
			CardholderName: pick(record, index, "cardholderName"),
			CardNumber:     pick(record, index, "cardNumber"),
			ExpirationDate: pick(record, index, "expirationDate"),
		},
	}
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
