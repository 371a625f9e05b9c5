package evmauth

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Client provides a high-level API over the authorization kernel for
// tooling: encoding signer output and checking files of signature records.
type Client struct {
	codec  Codec
	parser SignatureParser
	batch  BatchConfig
	cache  *VerdictCache
}

// NewClient creates a new client with default settings: wallet-style
// {27,28} recovery markers and JSON input.
func NewClient() *Client {
	return &Client{
		codec:  LegacyCodec,
		parser: &JSONParser{},
		batch:  DefaultBatchConfig(),
	}
}

// WithCodec sets the codec used to encode r, s, v signatures.
func (c *Client) WithCodec(codec Codec) *Client {
	c.codec = codec
	return c
}

// WithParser sets a custom signature parser.
func (c *Client) WithParser(parser SignatureParser) *Client {
	c.parser = parser
	return c
}

// WithBatchConfig sets the worker and logging configuration.
func (c *Client) WithBatchConfig(config BatchConfig) *Client {
	c.batch = config
	return c
}

// WithCache memoizes decisions in cache. Records already decided are not
// evaluated again.
func (c *Client) WithCache(cache *VerdictCache) *Client {
	c.cache = cache
	return c
}

// Codec returns the client's codec.
func (c *Client) Codec() Codec { return c.codec }

// EncodeRSVHex encodes a 0x-prefixed 65-byte r||s||v signature.
func (c *Client) EncodeRSVHex(rsvHex string) (CompactSignature, error) {
	rsv, err := hexutil.Decode(rsvHex)
	if err != nil {
		return CompactSignature{}, fmt.Errorf("failed to decode signature: %w", err)
	}
	return c.codec.EncodeRSV(rsv)
}

// RecordResult is the decision for one signature record.
type RecordResult struct {
	Name     string
	Expected Address
	Decision Decision
}

// Report summarizes a verification run.
type Report struct {
	Results  []RecordResult
	Accepted int
	Rejected int
}

// VerifyFile checks every record in source.
//
// Args:
//   - ctx: Context for cancellation.
//   - source: Path to the record file (JSON or CSV, depending on the parser).
//   - expected: Signer every record must match; nil uses each record's own address.
//
// Returns:
//   - Report with one result per record, error if the file cannot be read or a
//     record cannot be encoded.
func (c *Client) VerifyFile(ctx context.Context, source string, expected *Address) (*Report, error) {
	records, err := c.parser.ParseSignatures(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signatures: %w", err)
	}
	return c.VerifyRecords(ctx, records, expected)
}

// VerifyRecords checks in-memory records. Use this when records come from
// your own parser or API.
func (c *Client) VerifyRecords(ctx context.Context, records []*SignedDigest, expected *Address) (*Report, error) {
	// Records sharing a signer are evaluated as one batch.
	groups := make(map[Address][]int)
	order := make([]Address, 0)
	spends := make([]Spend, len(records))
	results := make([]RecordResult, len(records))

	for i, rec := range records {
		want := expected
		if want == nil {
			want = rec.Expected
		}
		if want == nil {
			return nil, fmt.Errorf("%s: no expected address given", rec.Name)
		}

		witness, err := rec.Witness(c.codec)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to encode signature: %w", rec.Name, err)
		}
		spends[i] = &Transaction{ID: rec.Digest, Witnesses: [][]byte{witness}}
		results[i] = RecordResult{Name: rec.Name, Expected: *want}

		if _, ok := groups[*want]; !ok {
			order = append(order, *want)
		}
		groups[*want] = append(groups[*want], i)
	}

	report := &Report{Results: results}
	for _, addr := range order {
		idx := c.uncached(addr, groups[addr], records, spends, report)
		if len(idx) == 0 {
			continue
		}
		batch := make([]Spend, len(idx))
		for j, i := range idx {
			batch[j] = spends[i]
		}

		authorizer := NewAuthorizer(NewAuthorizationConfig(addr)).WithBatchConfig(c.batch)
		decisions, err := authorizer.AuthorizeBatch(ctx, batch)
		if err != nil {
			return nil, err
		}
		for j, i := range idx {
			report.Results[i].Decision = decisions[j]
			if c.cache != nil {
				witness, _ := spends[i].Witness(0)
				if err := c.cache.Put(addr, records[i].Digest[:], witness, decisions[j]); err != nil {
					return nil, fmt.Errorf("%s: failed to memoize decision: %w", records[i].Name, err)
				}
			}
		}
	}

	for _, res := range report.Results {
		if res.Decision.Accepted() {
			report.Accepted++
		} else {
			report.Rejected++
		}
	}
	return report, nil
}

// uncached fills the results of records already in the cache and returns the
// indices still to be evaluated.
func (c *Client) uncached(addr Address, idx []int, records []*SignedDigest, spends []Spend, report *Report) []int {
	if c.cache == nil {
		return idx
	}
	pending := idx[:0:0]
	for _, i := range idx {
		witness, _ := spends[i].Witness(0)
		if d, ok := c.cache.Get(addr, records[i].Digest[:], witness); ok {
			report.Results[i].Decision = d
			continue
		}
		pending = append(pending, i)
	}
	return pending
}
