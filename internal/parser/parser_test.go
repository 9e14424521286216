package parser

import "testing"

func TestNew(t *testing.T) {
	for _, bt := range []BankType{BankTypeA, BankTypeB, BankTypeC, BankTypeD} {
		p, err := New(bt)
		if err != nil {
			t.Fatalf("New(%s) returned error: %v", bt, err)
		}
		if p.BankType() != bt {
			t.Errorf("New(%s).BankType() = %s", bt, p.BankType())
		}
	}

	if _, err := New("bank-x"); err == nil {
		t.Error("New(bank-x) should fail")
	}
}

func TestParseBankType(t *testing.T) {
	tests := []struct {
		input   string
		want    BankType
		wantErr bool
	}{
		{"bank-a", BankTypeA, false},
		{"bank-d", BankTypeD, false},
		{"", "", true},
		{"Bank-A", "", true},
		{"bank-e", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBankType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBankType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseBankType(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}
