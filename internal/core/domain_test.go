package core

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Food", "Food"},
		{"padded", "  Rent  ", "Rent"},
		{"empty", "", "Other"},
		{"whitespace only", "   ", "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeCategory(tt.in); got != tt.want {
				t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSalaryRecordValidate(t *testing.T) {
	date := time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		record  SalaryRecord
		wantErr error
	}{
		{"valid", SalaryRecord{ReceivedDate: date, SalaryMonth: "2024-06"}, nil},
		{"zero date", SalaryRecord{SalaryMonth: "2024-06"}, ErrZeroDate},
		{"bad month", SalaryRecord{ReceivedDate: date, SalaryMonth: "2024-13"}, ErrInvalidSalaryMonth},
		{"malformed month", SalaryRecord{ReceivedDate: date, SalaryMonth: "June 2024"}, ErrInvalidSalaryMonth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.record.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTransactionValidate(t *testing.T) {
	date := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		txn     Transaction
		wantErr error
	}{
		{"valid income", Transaction{Type: TypeIncome, TransactionDate: date}, nil},
		{"valid expense", Transaction{Type: TypeExpense, TransactionDate: date}, nil},
		{"bad type", Transaction{Type: "transfer", TransactionDate: date}, ErrInvalidType},
		{"zero date", Transaction{Type: TypeExpense}, ErrZeroDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.txn.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBudgetAndGoalValidate(t *testing.T) {
	if err := (Budget{Category: "Food"}).Validate(); err != nil {
		t.Errorf("valid budget: %v", err)
	}
	if err := (Budget{Category: "  "}).Validate(); !errors.Is(err, ErrEmptyCategory) {
		t.Errorf("blank budget category: got %v, want %v", err, ErrEmptyCategory)
	}
	if err := (Goal{Title: "Emergency fund"}).Validate(); err != nil {
		t.Errorf("valid goal: %v", err)
	}
	if err := (Goal{}).Validate(); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("blank goal title: got %v, want %v", err, ErrEmptyTitle)
	}
}
