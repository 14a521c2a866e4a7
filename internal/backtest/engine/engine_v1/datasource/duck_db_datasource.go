package datasource

import (
	"database/sql"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"go.uber.org/zap"
)

type DuckDBDataSource struct {
	db      *sql.DB
	logger  *logger.Logger
	sq      squirrel.StatementBuilderType
	columns ColumnMapping
}

// NewDataSource creates a new DuckDB data source instance with the specified database path.
// Use ":memory:" for an in-memory database. This is distinct from Initialize() which
// exposes a market data file to the database.
func NewDataSource(path string, columns ColumnMapping, logger *logger.Logger) (DataSource, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb", err)
	}

	return &DuckDBDataSource{
		db:      db,
		logger:  logger,
		sq:      squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		columns: columns.withDefaults(),
	}, nil
}

// DetectFormat infers the file format from the extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".parquet":
		return FormatParquet, nil
	default:
		return "", errors.Newf(errors.ErrCodeUnsupportedFormat, "unsupported market data file: %s", path)
	}
}

// Initialize implements DataSource. It creates a raw view over the file, checks the mapped
// columns exist and exposes them as market_data(time, symbol, open, high, low, close, volume).
func (d *DuckDBDataSource) Initialize(path string) error {
	d.logger.Debug("Initializing DuckDB data source", zap.String("path", path))

	format, err := DetectFormat(path)
	if err != nil {
		return err
	}

	reader := "read_csv_auto"
	if format == FormatParquet {
		reader = "read_parquet"
	}

	// views cannot be created with squirrel
	statements := []string{
		`DROP VIEW IF EXISTS market_data;`,
		`DROP VIEW IF EXISTS market_raw;`,
		fmt.Sprintf(`CREATE VIEW market_raw AS SELECT * FROM %s('%s');`, reader, quoteLiteral(path)),
	}

	for _, statement := range statements {
		if _, err := d.db.Exec(statement); err != nil {
			return errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to load %s", path)
		}
	}

	available, err := d.rawColumns()
	if err != nil {
		return err
	}

	required := []string{d.columns.Time, d.columns.Open, d.columns.High, d.columns.Low, d.columns.Close, d.columns.Volume}
	for _, column := range required {
		if _, ok := available[strings.ToLower(column)]; !ok {
			d.logger.Error("Required column missing",
				zap.String("column", column),
				zap.String("path", path),
			)

			return errors.NewColumnError(column, path)
		}
	}

	symbol := fmt.Sprintf("CAST(%s AS VARCHAR)", quoteIdentifier(d.columns.Symbol))
	if _, ok := available[strings.ToLower(d.columns.Symbol)]; !ok {
		symbol = fmt.Sprintf("'%s'", quoteLiteral(SymbolFromPath(path)))
	}

	view := fmt.Sprintf(`
		CREATE VIEW market_data AS
		SELECT
			CAST(%s AS TIMESTAMP) AS time,
			%s AS symbol,
			CAST(%s AS DOUBLE) AS open,
			CAST(%s AS DOUBLE) AS high,
			CAST(%s AS DOUBLE) AS low,
			CAST(%s AS DOUBLE) AS close,
			CAST(%s AS DOUBLE) AS volume
		FROM market_raw;
	`,
		quoteIdentifier(d.columns.Time),
		symbol,
		quoteIdentifier(d.columns.Open),
		quoteIdentifier(d.columns.High),
		quoteIdentifier(d.columns.Low),
		quoteIdentifier(d.columns.Close),
		quoteIdentifier(d.columns.Volume),
	)

	if _, err := d.db.Exec(view); err != nil {
		return errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to map columns of %s", path)
	}

	return nil
}

func (d *DuckDBDataSource) rawColumns() (map[string]struct{}, error) {
	rows, err := d.db.Query(`SELECT * FROM market_raw LIMIT 0`)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to inspect columns", err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to inspect columns", err)
	}

	columns := make(map[string]struct{}, len(names))
	for _, name := range names {
		columns[strings.ToLower(name)] = struct{}{}
	}

	return columns, nil
}

func (d *DuckDBDataSource) withRange(query squirrel.SelectBuilder, start optional.Option[time.Time], end optional.Option[time.Time]) squirrel.SelectBuilder {
	if start.IsSome() {
		query = query.Where(squirrel.GtOrEq{"time": start.Unwrap()})
	}

	if end.IsSome() {
		query = query.Where(squirrel.LtOrEq{"time": end.Unwrap()})
	}

	return query
}

// Count implements DataSource.
func (d *DuckDBDataSource) Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	query, args, err := d.withRange(d.sq.Select("COUNT(*)").From("market_data"), start, end).ToSql()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	var count int
	if err := d.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count market data", err)
	}

	return count, nil
}

// ReadAll implements DataSource. NULL prices are read as NaN.
func (d *DuckDBDataSource) ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.MarketData, error) bool) {
	return func(yield func(types.MarketData, error) bool) {
		d.logger.Debug("Reading all data from DuckDB")

		query, args, err := d.withRange(
			d.sq.Select("time", "symbol", "open", "high", "low", "close", "volume").From("market_data"),
			start, end,
		).OrderBy("time ASC").ToSql()
		if err != nil {
			yield(types.MarketData{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err))

			return
		}

		rows, err := d.db.Query(query, args...)
		if err != nil {
			yield(types.MarketData{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query market data", err))

			return
		}
		defer rows.Close()

		for rows.Next() {
			var (
				timestamp                      time.Time
				symbol                         string
				open, high, low, close, volume sql.NullFloat64
			)

			if err := rows.Scan(&timestamp, &symbol, &open, &high, &low, &close, &volume); err != nil {
				yield(types.MarketData{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan row", err))

				return
			}

			data := types.MarketData{
				Time:   timestamp,
				Symbol: symbol,
				Open:   nullToNaN(open),
				High:   nullToNaN(high),
				Low:    nullToNaN(low),
				Close:  nullToNaN(close),
				Volume: nullToNaN(volume),
			}

			if !yield(data, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(types.MarketData{}, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating rows", err))
		}
	}
}

// GetAllSymbols returns all distinct symbols from the market data.
func (d *DuckDBDataSource) GetAllSymbols() ([]string, error) {
	query, args, err := d.sq.Select("DISTINCT symbol").From("market_data").OrderBy("symbol").ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to get symbols", err)
	}
	defer rows.Close()

	var symbols []string

	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan symbol", err)
		}

		symbols = append(symbols, symbol)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating symbols", err)
	}

	return symbols, nil
}

// Close implements DataSource.
func (d *DuckDBDataSource) Close() error {
	if d.db != nil {
		return d.db.Close()
	}

	return nil
}

// SymbolFromPath derives a symbol from a data file name: data/AAPL_2020.csv -> AAPL_2020.
func SymbolFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func nullToNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}

	return v.Float64
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteLiteral(value string) string {
	return strings.ReplaceAll(value, `'`, `''`)
}
