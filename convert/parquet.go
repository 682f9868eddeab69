package convert

import (
	"bytes"
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/BrobridgeOrg/go-commonfunc/format"
	fileio "github.com/BrobridgeOrg/go-commonfunc/io"
)

// CSVToParquet writes table to path as a Snappy-compressed Parquet file.
// Each row-group of the table becomes one Parquet row-group.
func CSVToParquet(ctx context.Context, fileIO fileio.FileIO, table *format.Table, path string) error {
	data, err := EncodeParquet(table)
	if err != nil {
		return err
	}
	return writeFile(ctx, fileIO, path, data)
}

// EncodeParquet encodes table as Parquet bytes.
func EncodeParquet(table *format.Table) ([]byte, error) {
	names, err := columnNames(table)
	if err != nil {
		return nil, err
	}

	fields := make([]arrow.Field, len(names))
	for i, name := range names {
		fields[i] = arrow.Field{Name: name, Type: arrow.BinaryTypes.String, Nullable: false}
	}
	schema := arrow.NewSchema(fields, nil)

	writerProps := parquet.NewWriterProperties(
		parquet.WithCompression(compress.Codecs.Snappy),
	)
	arrowProps := pqarrow.NewArrowWriterProperties(
		pqarrow.WithStoreSchema(),
	)

	var buf bytes.Buffer
	pqWriter, err := pqarrow.NewFileWriter(schema, &buf, writerProps, arrowProps)
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet writer: %w", err)
	}

	mem := memory.NewGoAllocator()
	builder := array.NewRecordBuilder(mem, schema)
	defer builder.Release()

	index := 0
	for _, group := range table.Groups {
		for _, row := range group {
			padded, err := padRow(row, len(names), index)
			if err != nil {
				pqWriter.Close()
				return nil, err
			}
			for i, value := range padded {
				builder.Field(i).(*array.StringBuilder).Append(value)
			}
			index++
		}

		record := builder.NewRecord()
		err := pqWriter.Write(record)
		record.Release()
		if err != nil {
			pqWriter.Close()
			return nil, fmt.Errorf("failed to write row group: %w", err)
		}
	}

	if err := pqWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadParquet reads a Parquet file into a table. Column names become the
// header and each Parquet row-group becomes one table row-group.
func ReadParquet(ctx context.Context, fileIO fileio.FileIO, path string) (*format.Table, error) {
	data, err := readFile(ctx, fileIO, path)
	if err != nil {
		return nil, err
	}
	return DecodeParquet(ctx, data)
}

// DecodeParquet decodes Parquet bytes into a table.
func DecodeParquet(ctx context.Context, data []byte) (*format.Table, error) {
	pqReader, err := file.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: parquet: %v", format.ErrMalformed, err)
	}
	defer pqReader.Close()

	fr, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, memory.NewGoAllocator())
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	schema, err := fr.Schema()
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet schema: %w", err)
	}

	table := &format.Table{Header: make([]string, schema.NumFields())}
	for i, field := range schema.Fields() {
		table.Header[i] = field.Name
	}

	columns := make([]int, pqReader.MetaData().Schema.NumColumns())
	for i := range columns {
		columns[i] = i
	}

	for rg := 0; rg < pqReader.NumRowGroups(); rg++ {
		tbl, err := fr.ReadRowGroups(ctx, columns, []int{rg})
		if err != nil {
			return nil, fmt.Errorf("failed to read row group %d: %w", rg, err)
		}
		group := tableRows(tbl)
		tbl.Release()
		if len(group) > 0 {
			table.Groups = append(table.Groups, group)
		}
	}

	return table, nil
}

// tableRows flattens an Arrow table into rows of strings.
func tableRows(tbl arrow.Table) [][]string {
	if tbl.NumRows() == 0 {
		return nil
	}
	rows := make([][]string, 0, tbl.NumRows())

	reader := array.NewTableReader(tbl, tbl.NumRows())
	defer reader.Release()

	for reader.Next() {
		rec := reader.Record()
		cols := int(rec.NumCols())
		for r := 0; r < int(rec.NumRows()); r++ {
			row := make([]string, cols)
			for c := 0; c < cols; c++ {
				row[c] = cellString(rec.Column(c), r)
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func cellString(col arrow.Array, i int) string {
	if col.IsNull(i) {
		return ""
	}
	if s, ok := col.(*array.String); ok {
		return s.Value(i)
	}
	return col.ValueStr(i)
}
