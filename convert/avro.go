package convert

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/linkedin/goavro/v2"

	"github.com/BrobridgeOrg/go-commonfunc/format"
	fileio "github.com/BrobridgeOrg/go-commonfunc/io"
)

// avroRecordName is the record name used in generated schemas.
const avroRecordName = "row"

type avroField struct {
	Name string `json:"name"`
	Type any    `json:"type"`
}

type avroSchema struct {
	Type   string      `json:"type"`
	Name   string      `json:"name"`
	Fields []avroField `json:"fields"`
}

// AvroFieldName maps a column name to a valid Avro field name. Characters
// outside [A-Za-z0-9_] become '_' and a leading digit gets a '_' prefix.
func AvroFieldName(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// avroFieldNames sanitizes column names and keeps them unique.
func avroFieldNames(names []string) []string {
	out := make([]string, len(names))
	seen := make(map[string]bool, len(names))
	for i, name := range names {
		field := AvroFieldName(name)
		if field == "" || seen[field] {
			field = "column_" + strconv.Itoa(i+1)
		}
		for seen[field] {
			field += "_"
		}
		seen[field] = true
		out[i] = field
	}
	return out
}

// CSVToAvro writes table to path as an Avro object container file with
// deflate compression. Each table row-group is appended as one block.
func CSVToAvro(ctx context.Context, fileIO fileio.FileIO, table *format.Table, path string) error {
	data, err := EncodeAvro(table)
	if err != nil {
		return err
	}
	return writeFile(ctx, fileIO, path, data)
}

// EncodeAvro encodes table as Avro object container bytes.
func EncodeAvro(table *format.Table) ([]byte, error) {
	names, err := columnNames(table)
	if err != nil {
		return nil, err
	}
	fields := avroFieldNames(names)

	schema := avroSchema{Type: "record", Name: avroRecordName, Fields: make([]avroField, len(fields))}
	for i, name := range fields {
		schema.Fields[i] = avroField{Name: name, Type: "string"}
	}
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to encode avro schema: %w", err)
	}

	codec, err := goavro.NewCodec(string(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create avro codec: %w", err)
	}

	buf := new(bytes.Buffer)
	ocf, err := goavro.NewOCFWriter(goavro.OCFConfig{
		W:               buf,
		Codec:           codec,
		CompressionName: "deflate",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create OCF writer: %w", err)
	}

	index := 0
	for _, group := range table.Groups {
		records := make([]any, 0, len(group))
		for _, row := range group {
			padded, err := padRow(row, len(fields), index)
			if err != nil {
				return nil, err
			}
			record := make(map[string]any, len(fields))
			for i, field := range fields {
				record[field] = padded[i]
			}
			records = append(records, record)
			index++
		}
		if err := ocf.Append(records); err != nil {
			return nil, fmt.Errorf("failed to append avro records: %w", err)
		}
	}

	return buf.Bytes(), nil
}

// ReadAvro reads an Avro object container file written by CSVToAvro. The
// field names become the header and rows are grouped by chunkSize.
func ReadAvro(ctx context.Context, fileIO fileio.FileIO, path string, chunkSize int) (*format.Table, error) {
	data, err := readFile(ctx, fileIO, path)
	if err != nil {
		return nil, err
	}
	return DecodeAvro(data, chunkSize)
}

// DecodeAvro decodes Avro object container bytes into a table.
func DecodeAvro(data []byte, chunkSize int) (*format.Table, error) {
	ocf, err := goavro.NewOCFReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: avro: %v", format.ErrMalformed, err)
	}

	var schema avroSchema
	if err := json.Unmarshal([]byte(ocf.Codec().Schema()), &schema); err != nil {
		return nil, fmt.Errorf("failed to parse avro schema: %w", err)
	}
	if schema.Type != "record" {
		return nil, fmt.Errorf("%w: avro schema type %q is not a record", format.ErrMalformed, schema.Type)
	}

	header := make([]string, len(schema.Fields))
	for i, f := range schema.Fields {
		header[i] = f.Name
	}

	var rows [][]string
	for ocf.Scan() {
		datum, err := ocf.Read()
		if err != nil {
			return nil, fmt.Errorf("failed to read avro record: %w", err)
		}
		m, ok := datum.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unexpected record type %T", datum)
		}

		row := make([]string, len(header))
		for i, name := range header {
			row[i] = format.Stringify(m[name])
		}
		rows = append(rows, row)
	}

	if err := ocf.Err(); err != nil {
		return nil, fmt.Errorf("error reading avro file: %w", err)
	}

	return &format.Table{Header: header, Groups: format.GroupRows(rows, chunkSize)}, nil
}
