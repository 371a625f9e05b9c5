package evmauth

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// SignedDigest is one signature record read from a file: the digest that was
// signed, the signature (either already compact or as r, s, v) and optionally
// the address expected to have signed it.
type SignedDigest struct {
	Name     string
	Digest   MessageDigest
	Compact  []byte     // witness bytes as given, not length-checked
	Sig      *Signature // set when the record carries r, s and v
	Expected *Address   // nil when the record names no signer
}

// Witness returns the witness buffer for the record, encoding r, s and v with
// codec when no compact form was given.
func (sd *SignedDigest) Witness(codec Codec) ([]byte, error) {
	if sd.Compact != nil {
		return sd.Compact, nil
	}
	if sd.Sig == nil {
		return nil, fmt.Errorf("record %q has no signature", sd.Name)
	}
	cs, err := codec.Encode(*sd.Sig)
	if err != nil {
		return nil, err
	}
	return cs.Bytes(), nil
}

// SignatureParser defines the interface for parsing signature records from various sources.
type SignatureParser interface {
	// ParseSignatures parses signature records from a source and returns them.
	ParseSignatures(source string) ([]*SignedDigest, error)
}

// JSONParser parses signature records from JSON files.
type JSONParser struct {
	NameField    string // Field name for the record name (default: "name")
	DigestField  string // Field name for the digest (default: "digest")
	CompactField string // Field name for the compact signature (default: "compact")
	RField       string // Field name for r (default: "r")
	SField       string // Field name for s (default: "s")
	VField       string // Field name for v (default: "v")
	AddressField string // Field name for the expected address (default: "address")
}

// ParseSignatures parses signature records from a JSON file.
//
// Expected format:
//
//	[
//	  {"digest": "0x...", "compact": "0x...", "address": "0x..."},
//	  {"digest": "0x...", "r": "0x...", "s": "0x...", "v": 27}
//	]
//
// When both forms are present the compact signature wins.
func (p *JSONParser) ParseSignatures(jsonFile string) ([]*SignedDigest, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()

	return p.Parse(file)
}

// Parse reads signature records from r.
func (p *JSONParser) Parse(r io.Reader) ([]*SignedDigest, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber() // v may be a bare number

	var items []map[string]interface{}
	if err := decoder.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	nameField := orDefault(p.NameField, "name")
	digestField := orDefault(p.DigestField, "digest")
	compactField := orDefault(p.CompactField, "compact")
	rField := orDefault(p.RField, "r")
	sField := orDefault(p.SField, "s")
	vField := orDefault(p.VField, "v")
	addressField := orDefault(p.AddressField, "address")

	records := make([]*SignedDigest, 0, len(items))

	for i, item := range items {
		rec := &SignedDigest{Name: fmt.Sprintf("record_%d", i)}

		if nameVal, ok := item[nameField].(string); ok && nameVal != "" {
			rec.Name = nameVal
		}

		// Get digest
		digestVal, ok := item[digestField].(string)
		if !ok {
			return nil, fmt.Errorf("%s: missing %s field", rec.Name, digestField)
		}
		digest, err := ParseDigest(digestVal)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", rec.Name, err)
		}
		rec.Digest = digest

		// Get signature, compact form first
		if compactVal, ok := item[compactField].(string); ok && compactVal != "" {
			compact, err := hexutil.Decode(compactVal)
			if err != nil {
				return nil, fmt.Errorf("%s: failed to parse compact signature: %w", rec.Name, err)
			}
			rec.Compact = compact
		} else {
			rVal, rOk := item[rField]
			sVal, sOk := item[sField]
			vVal, vOk := item[vField]
			if !rOk || !sOk || !vOk {
				return nil, fmt.Errorf("%s: missing %s or %s/%s/%s fields", rec.Name, compactField, rField, sField, vField)
			}
			sig, err := parseRSV(rVal, sVal, vVal)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", rec.Name, err)
			}
			rec.Sig = sig
		}

		// Get expected address
		if addrVal, ok := item[addressField].(string); ok && addrVal != "" {
			addr, err := ParseAddress(addrVal)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", rec.Name, err)
			}
			rec.Expected = &addr
		}

		records = append(records, rec)
	}

	return records, nil
}

// CSVParser parses signature records from CSV files.
type CSVParser struct {
	NameCol    string // Column name for the record name (default: "name")
	DigestCol  string // Column name for the digest (default: "digest")
	CompactCol string // Column name for the compact signature (default: "compact")
	RCol       string // Column name for r (default: "r")
	SCol       string // Column name for s (default: "s")
	VCol       string // Column name for v (default: "v")
	AddressCol string // Column name for the expected address (default: "address")
}

// ParseSignatures parses signature records from a CSV file.
func (p *CSVParser) ParseSignatures(csvFile string) ([]*SignedDigest, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	// Read header
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Find column indices
	cols := map[string]int{}
	for i, col := range header {
		cols[col] = i
	}
	index := func(name, def string) int {
		if idx, ok := cols[orDefault(name, def)]; ok {
			return idx
		}
		return -1
	}
	nameIdx := index(p.NameCol, "name")
	digestIdx := index(p.DigestCol, "digest")
	compactIdx := index(p.CompactCol, "compact")
	rIdx := index(p.RCol, "r")
	sIdx := index(p.SCol, "s")
	vIdx := index(p.VCol, "v")
	addressIdx := index(p.AddressCol, "address")

	if digestIdx == -1 {
		return nil, fmt.Errorf("missing required column: digest")
	}
	if compactIdx == -1 && (rIdx == -1 || sIdx == -1 || vIdx == -1) {
		return nil, fmt.Errorf("missing required columns: compact or r, s, v")
	}

	cell := func(record []string, idx int) string {
		if idx < 0 || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	records := make([]*SignedDigest, 0)

	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		rec := &SignedDigest{Name: fmt.Sprintf("record_%d", line-1)}
		if name := cell(record, nameIdx); name != "" {
			rec.Name = name
		}

		digest, err := ParseDigest(cell(record, digestIdx))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec.Digest = digest

		if compactHex := cell(record, compactIdx); compactHex != "" {
			compact, err := hexutil.Decode(compactHex)
			if err != nil {
				return nil, fmt.Errorf("line %d: failed to parse compact signature: %w", line, err)
			}
			rec.Compact = compact
		} else {
			sig, err := parseRSV(cell(record, rIdx), cell(record, sIdx), cell(record, vIdx))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			rec.Sig = sig
		}

		if addrHex := cell(record, addressIdx); addrHex != "" {
			addr, err := ParseAddress(addrHex)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			rec.Expected = &addr
		}

		records = append(records, rec)
	}

	return records, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func parseRSV(rVal, sVal, vVal interface{}) (*Signature, error) {
	r, err := parseUint256(rVal)
	if err != nil {
		return nil, fmt.Errorf("failed to parse r: %w", err)
	}
	s, err := parseUint256(sVal)
	if err != nil {
		return nil, fmt.Errorf("failed to parse s: %w", err)
	}
	v, err := parseUint256(vVal)
	if err != nil {
		return nil, fmt.Errorf("failed to parse v: %w", err)
	}
	if !v.IsUint64() || v.Uint64() > 255 {
		return nil, fmt.Errorf("%w: v %s does not fit a byte", ErrInvalidRecoveryID, v.Dec())
	}
	return &Signature{R: r, S: s, V: uint8(v.Uint64())}, nil
}

// parseUint256 parses a 256-bit integer from a 0x-prefixed hex string, a
// decimal string or a JSON number.
func parseUint256(val interface{}) (*uint256.Int, error) {
	switch v := val.(type) {
	case string:
		v = strings.TrimSpace(v)
		if strings.HasPrefix(v, "0x") || strings.HasPrefix(v, "0X") {
			b, err := hexutil.Decode("0x" + v[2:])
			if err != nil {
				return nil, fmt.Errorf("invalid number format: %s", v)
			}
			if len(b) > 32 {
				return nil, fmt.Errorf("number exceeds 256 bits: %s", v)
			}
			return new(uint256.Int).SetBytes(b), nil
		}
		z, err := uint256.FromDecimal(v)
		if err != nil {
			return nil, fmt.Errorf("invalid number format: %s", v)
		}
		return z, nil

	case json.Number:
		n, err := strconv.ParseUint(string(v), 10, 64)
		if err != nil {
			return parseUint256(string(v))
		}
		return uint256.NewInt(n), nil

	case int:
		if v < 0 {
			return nil, fmt.Errorf("negative number: %d", v)
		}
		return uint256.NewInt(uint64(v)), nil

	default:
		return nil, fmt.Errorf("unsupported type: %T", val)
	}
}
