// seed_filiais genera el script SQL que puebla la tabla filiais a partir de un CSV
// "id;nome" (UTF-8 o ISO-8859-1, como lo exporta Excel).
//
// Uso: go run ./cmd/seed_filiais [ruta/filiais.csv] [salida.sql]
// Por defecto lee filiais.csv del directorio actual.
// Escribe: migrations/002_seed_filiais.sql
package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gocarina/gocsv"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type branchRow struct {
	ID   string `csv:"id"`
	Name string `csv:"nome"`
}

func main() {
	csvPath := "filiais.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	data, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}

	rows, err := parseBranches(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ler CSV: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "migrations", "002_seed_filiais.sql")
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Criar arquivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Gravar SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Gerado %s: %d filiais\n", outPath, len(rows))
}

// parseBranches decodifica el CSV; si no es UTF-8 válido se interpreta como ISO-8859-1.
// Filas sin id numérico o sin nome se descartan; ids repetidos conservan la última fila.
func parseBranches(data []byte) ([]branchRow, error) {
	data = bytes.TrimPrefix(data, []byte("\uFEFF"))
	var in io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		in = transform.NewReader(in, charmap.ISO8859_1.NewDecoder())
	}

	var raw []branchRow
	if err := gocsv.UnmarshalCSV(semicolonReader(in), &raw); err != nil {
		return nil, err
	}

	byID := make(map[int64]branchRow, len(raw))
	for _, r := range raw {
		r.ID = strings.TrimSpace(r.ID)
		r.Name = strings.TrimSpace(r.Name)
		id, err := strconv.ParseInt(r.ID, 10, 64)
		if err != nil || r.Name == "" {
			continue
		}
		byID[id] = branchRow{ID: strconv.FormatInt(id, 10), Name: r.Name}
	}

	ids := make([]int64, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	rows := make([]branchRow, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, byID[id])
	}
	return rows, nil
}

func semicolonReader(in io.Reader) gocsv.CSVReader {
	r := csv.NewReader(in)
	r.Comma = ';'
	r.TrimLeadingSpace = true
	return r
}

func writeSQL(w io.Writer, rows []branchRow) error {
	var b strings.Builder
	b.WriteString("-- Filiais (gerado por cmd/seed_filiais)\n\n")
	if len(rows) == 0 {
		b.WriteString("-- nenhuma filial no CSV\n")
		_, err := io.WriteString(w, b.String())
		return err
	}
	b.WriteString("INSERT INTO filiais (id, nome) VALUES\n")
	for i, r := range rows {
		sep := ","
		if i == len(rows)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "  (%s, '%s')%s\n", r.ID, escapeSQL(r.Name), sep)
	}
	b.WriteString("ON CONFLICT (id) DO UPDATE SET nome = EXCLUDED.nome;\n\n")
	// bigserial: la secuencia debe quedar por encima del mayor id importado
	b.WriteString("SELECT setval(pg_get_serial_sequence('filiais', 'id'), (SELECT MAX(id) FROM filiais));\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
