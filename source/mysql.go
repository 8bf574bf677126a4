package source

import (
	"context"
	"database/sql"

	_type "energyvis/type"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenMySQL opens the connection shared by every "mysql:" dataset.
func OpenMySQL(cfg _type.MySQLConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, _type.WrapErrorf(_type.ErrCodeLoadFailure, err, "open mysql %s:%s", cfg.Host, cfg.Port)
	}
	return db, nil
}

// MySQLSource reads a whole table. Every column is read as text so the
// rows go through the same inference as CSV input; NULL reads as "".
type MySQLSource struct {
	name  string
	db    *gorm.DB
	table string
}

func NewMySQLSource(name string, db *gorm.DB, table string) *MySQLSource {
	return &MySQLSource{name: name, db: db, table: table}
}

func (s *MySQLSource) Name() string { return s.name }

func (s *MySQLSource) Fetch(ctx context.Context) (*_type.Dataset, error) {
	rows, err := s.db.WithContext(ctx).Table(s.table).Rows()
	if err != nil {
		return nil, _type.WrapErrorf(_type.ErrCodeLoadFailure, err, "query table %s", s.table)
	}
	defer rows.Close()

	heads, err := rows.Columns()
	if err != nil {
		return nil, _type.WrapErrorf(_type.ErrCodeLoadFailure, err, "columns of %s", s.table)
	}

	records, err := scanStrings(rows, len(heads))
	if err != nil {
		return nil, _type.WrapErrorf(_type.ErrCodeLoadFailure, err, "scan table %s", s.table)
	}
	return _type.NewDataset(s.name, heads, records), nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanStrings(rows rowScanner, width int) ([][]string, error) {
	var records [][]string
	for rows.Next() {
		cells := make([]sql.NullString, width)
		dest := make([]any, width)
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		record := make([]string, width)
		for i, c := range cells {
			if c.Valid {
				record[i] = c.String
			}
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
