package validation

import (
	"errors"
	"testing"

	"github.com/nacorid/stellarpay"
)

const testAddress = "GBRPYHIL2CI3FNQ4BXLFMNDLFJUNPU2HY3ZMFSHONUCEOASW7QC7OX2H"

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		wantErr bool
	}{
		{name: "valid account address", address: testAddress},
		{name: "empty", address: "", wantErr: true},
		{name: "lowercase", address: "gbrpyhil2ci3fnq4bxlfmndlfjunpu2hy3zmfshonuceoasw7qc7ox2h", wantErr: true},
		{name: "too short", address: "GBRPYHIL2CI3FNQ4", wantErr: true},
		{name: "seed instead of address", address: "SBWWC43UMVZHAYLTONYGQ4TBONSW2YLTORSXE4DBONZXA2DSMFZWLP2R", wantErr: true},
		{name: "invalid base32 characters", address: "GBRPYHIL2CI3FNQ4BXLFMNDLFJUNPU2HY3ZMFSHONUCEOASW7QC7OX01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAddress(tt.address)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAddress(%q) error = %v; wantErr %v", tt.address, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, stellarpay.ErrInvalidIntent) {
				t.Errorf("error should wrap ErrInvalidIntent, got %v", err)
			}
		})
	}
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr bool
	}{
		{name: "integer amount", amount: "10"},
		{name: "full precision", amount: "0.0000001"},
		{name: "typical decimal", amount: "12.5"},
		{name: "empty", amount: "", wantErr: true},
		{name: "zero", amount: "0", wantErr: true},
		{name: "negative", amount: "-1", wantErr: true},
		{name: "not a number", amount: "ten", wantErr: true},
		{name: "too many decimal places", amount: "0.00000001", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(tt.amount)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAmount(%q) error = %v; wantErr %v", tt.amount, err, tt.wantErr)
			}
		})
	}
}

func TestValidateIntent(t *testing.T) {
	valid := stellarpay.PaymentIntent{Destination: testAddress, Amount: "10"}
	if err := ValidateIntent(valid); err != nil {
		t.Errorf("ValidateIntent(valid) = %v; want nil", err)
	}

	if err := ValidateIntent(stellarpay.PaymentIntent{Destination: "", Amount: "10"}); err == nil {
		t.Error("ValidateIntent should reject an empty destination")
	}
	if err := ValidateIntent(stellarpay.PaymentIntent{Destination: testAddress, Amount: ""}); err == nil {
		t.Error("ValidateIntent should reject an empty amount")
	}
}
