// Package camtingest loads transactions for the engine, either from CSV
// exports or from CAMT.053-style XML statements via XPath extraction.
package camtingest

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"gopkg.in/xmlpath.v2"

	"github.com/sofcal/posting-rules/internal/logging"
	"github.com/sofcal/posting-rules/internal/models"
)

var (
	entriesPath     = xmlpath.MustCompile("//BkToCstmrStmt/Stmt/Ntry")
	amountPath      = xmlpath.MustCompile("Amt")
	currencyPath    = xmlpath.MustCompile("Amt/@Ccy")
	creditDebitPath = xmlpath.MustCompile("CdtDbtInd")
	bookingDatePath = xmlpath.MustCompile("BookgDt/Dt")
	entryRefPath    = xmlpath.MustCompile("NtryRef")
	narrativePath   = xmlpath.MustCompile("NtryDtls/TxDtls/RmtInf/Ustrd")
	checkNumPath    = xmlpath.MustCompile("NtryDtls/TxDtls/Refs/ChqNb")
)

// Loader reads transaction batches from disk.
type Loader struct {
	logger logging.Logger
}

// NewLoader creates a Loader.
func NewLoader(logger logging.Logger) *Loader {
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(nil)
	}
	return &Loader{logger: logger}
}

// Load picks the reader from the file extension: .xml is parsed as a
// CAMT-style statement, anything else as CSV.
func (l *Loader) Load(path string) ([]*models.Transaction, error) {
	if strings.HasSuffix(strings.ToLower(path), ".xml") {
		return l.LoadXML(path)
	}
	return l.LoadCSV(path)
}

// LoadCSV reads transactions from a CSV export.
func (l *Loader) LoadCSV(path string) ([]*models.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			l.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	var transactions []*models.Transaction
	if err := gocsv.UnmarshalFile(file, &transactions); err != nil {
		return nil, fmt.Errorf("failed to parse CSV file: %w", err)
	}

	l.logger.WithFields(
		logging.F("file", path),
		logging.F("count", len(transactions)),
	).Info("Loaded transactions from CSV")
	return transactions, nil
}

// LoadXML reads transactions from a CAMT.053-style XML statement.
func (l *Loader) LoadXML(path string) ([]*models.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XML file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			l.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	root, err := xmlpath.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML file: %w", err)
	}

	var transactions []*models.Transaction
	iter := entriesPath.Iter(root)
	for iter.Next() {
		transactions = append(transactions, entryToTransaction(iter.Node()))
	}

	l.logger.WithFields(
		logging.F("file", path),
		logging.F("count", len(transactions)),
	).Info("Loaded transactions from XML")
	return transactions, nil
}

func entryToTransaction(node *xmlpath.Node) *models.Transaction {
	tx := &models.Transaction{}

	if v, ok := amountPath.String(node); ok {
		tx.TransactionAmount = models.ParseAmount(v)
	}
	// Debits carry a negative amount.
	if v, ok := creditDebitPath.String(node); ok && v == "DBIT" {
		tx.TransactionAmount = tx.TransactionAmount.Neg()
	}
	if v, ok := currencyPath.String(node); ok {
		tx.Currency = v
	}
	if v, ok := entryRefPath.String(node); ok {
		tx.TransactionID = v
	}
	if v, ok := narrativePath.String(node); ok {
		tx.TransactionNarrative = strings.TrimSpace(v)
	}
	if v, ok := checkNumPath.String(node); ok {
		tx.CheckNum = v
	}
	if v, ok := bookingDatePath.String(node); ok {
		if t, err := time.Parse("2006-01-02", strings.TrimSpace(v)); err == nil {
			tx.DatePosted = t
		}
	}

	return tx
}
