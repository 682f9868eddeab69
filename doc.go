// Package commonfunc provides small file and service helpers built around
// extension-dispatched file I/O.
//
// Reading and writing pick a format from the path's extension:
//
//   - .txt, .log, .py: plain text, whole or line by line
//   - .json: a single JSON document
//   - .csv: UTF-8 CSV, data rows grouped into row-groups of ChunkSize rows
//
// Any other extension is rejected with ErrUnsupportedType; there is no
// fallback format.
//
// # Quick Start
//
// Use the package-level helpers for local files:
//
//	err := commonfunc.WriteByExtension(ctx, "rows.csv", [][]string{{"id", "name"}, {"1", "a"}}, io.Truncate)
//	content, err := commonfunc.ReadByExtension(ctx, "rows.csv", commonfunc.WithHeader())
//	header := content.Table.Header
//
// Or build a Files handle to reach S3 as well:
//
//	files, err := commonfunc.NewFiles(ctx,
//	    commonfunc.WithS3(&commonfunc.S3Config{Region: "us-east-1"}),
//	    commonfunc.WithLogger(logger),
//	)
//	lines, err := files.ReadLines(ctx, "s3://bucket/logs/app.log")
//
// # Errors
//
// Reads report ErrFileNotFound for missing files and ErrDecode for content
// that does not parse. Writes report ErrIOFailed. All are matched with
// errors.Is; the typed errors carry the path and cause.
//
// # Related packages
//
// The request, units, texthash and fsutil packages hold the HTTP request
// helper, byte-size conversion, text hashing and folder/copy helpers. The
// convert package turns CSV tables into Parquet or Avro files; Files.ConvertCSV
// applies it to a CSV path.
package commonfunc
