package postgres

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/HTTPArchive/tech-report-apis/v1/query"
)

var (
	identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	jsonNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)
)

// documentRow is the storage layout shared by every collection.
type documentRow struct {
	Collection string `gorm:"column:collection;primaryKey;type:text;not null"`
	ID         string `gorm:"column:id;primaryKey;type:text;not null"`
	Data       string `gorm:"column:data;type:jsonb;not null"`
}

type scannedRow struct {
	ID   string
	Data string
}

// DocumentStore implements query.Store over a single JSONB table keyed by
// (collection, id).
type DocumentStore struct {
	pg    *Postgres
	table string
	sq    squirrel.StatementBuilderType
}

// NewDocumentStore returns a store reading from the configured table.
func NewDocumentStore(pg *Postgres) (*DocumentStore, error) {
	table := pg.cfg.table()
	if !identifier.MatchString(table) {
		return nil, fmt.Errorf("%w: table %q", ErrInvalidField, table)
	}
	return &DocumentStore{
		pg:    pg,
		table: table,
		sq:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// EnsureSchema creates the document table and its GIN index when missing.
func (s *DocumentStore) EnsureSchema(ctx context.Context) error {
	db := s.pg.DB().WithContext(ctx)
	if err := db.Table(s.table).AutoMigrate(&documentRow{}); err != nil {
		return TranslateError(err)
	}
	stmt := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s_data_gin ON %s USING gin (data)", s.table, s.table)
	return TranslateError(db.Exec(stmt).Error)
}

// Query implements query.Store.
func (s *DocumentStore) Query(ctx context.Context, spec query.QuerySpec) ([]query.Document, error) {
	sqlStr, args, err := s.renderQuery(spec)
	if err != nil {
		return nil, err
	}

	var rows []scannedRow
	if err := s.pg.DB().WithContext(ctx).Raw(sqlStr, args...).Scan(&rows).Error; err != nil {
		return nil, TranslateError(err)
	}

	docs := make([]query.Document, 0, len(rows))
	for _, row := range rows {
		data, err := query.DecodeData([]byte(row.Data))
		if err != nil {
			return nil, fmt.Errorf("%w: document %s/%s: %v", ErrInvalidData, spec.Collection, row.ID, err)
		}
		docs = append(docs, query.Document{ID: row.ID, Data: data})
	}
	return docs, nil
}

// MaxValue implements query.Store.
func (s *DocumentStore) MaxValue(ctx context.Context, collection, field string) (any, bool, error) {
	sqlStr, args, err := s.renderMaxValue(collection, field)
	if err != nil {
		return nil, false, err
	}

	var values []string
	if err := s.pg.DB().WithContext(ctx).Raw(sqlStr, args...).Scan(&values).Error; err != nil {
		return nil, false, TranslateError(err)
	}
	if len(values) == 0 {
		return nil, false, nil
	}

	v, err := query.DecodeValue([]byte(values[0]))
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return v, true, nil
}

// Put upserts documents into collection in one transaction.
func (s *DocumentStore) Put(ctx context.Context, collection string, docs ...query.Document) error {
	if len(docs) == 0 {
		return nil
	}

	rows := make([]documentRow, 0, len(docs))
	for i, doc := range docs {
		id := doc.ID
		if id == "" {
			return fmt.Errorf("%w: document %d of %s has no id", ErrInvalidData, i, collection)
		}
		data, err := json.Marshal(doc.Data)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
		rows = append(rows, documentRow{Collection: collection, ID: id, Data: string(data)})
	}

	err := s.pg.Transaction(ctx, func(tx *gorm.DB) error {
		return tx.Table(s.table).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "collection"}, {Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"data"}),
			}).
			CreateInBatches(rows, 500).Error
	})
	return TranslateError(err)
}

func (s *DocumentStore) renderQuery(spec query.QuerySpec) (string, []any, error) {
	projection, err := selectExpr(spec.Select)
	if err != nil {
		return "", nil, err
	}

	builder := s.sq.
		Select("id", projection+" AS data").
		From(s.table).
		Where(squirrel.Eq{"collection": spec.Collection})

	for _, c := range spec.Clauses {
		pred, err := predicate(c)
		if err != nil {
			return "", nil, err
		}
		builder = builder.Where(pred)
	}

	if spec.Sort != nil {
		if !identifier.MatchString(spec.Sort.Field) {
			return "", nil, fmt.Errorf("%w: %q", ErrInvalidField, spec.Sort.Field)
		}
		dir := "ASC"
		if spec.Sort.Direction == query.Descending {
			dir = "DESC"
		}
		builder = builder.OrderBy(fmt.Sprintf("data->'%s' %s NULLS LAST", spec.Sort.Field, dir))
	}
	builder = builder.OrderBy("id ASC")

	if spec.Limit > 0 {
		builder = builder.Limit(uint64(spec.Limit))
	}
	return builder.ToSql()
}

func (s *DocumentStore) renderMaxValue(collection, field string) (string, []any, error) {
	if !identifier.MatchString(field) {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
	value := fmt.Sprintf("data->'%s'", field)
	return s.sq.
		Select(value + "::text").
		From(s.table).
		Where(squirrel.Eq{"collection": collection}).
		Where(fmt.Sprintf("jsonb_typeof(%s) <> 'null'", value)).
		OrderBy(value + " DESC").
		Limit(1).
		ToSql()
}

func selectExpr(fields []string) (string, error) {
	if fields == nil {
		return "data", nil
	}
	pairs := make([]string, 0, len(fields))
	for _, f := range fields {
		if !identifier.MatchString(f) {
			return "", fmt.Errorf("%w: %q", ErrInvalidField, f)
		}
		pairs = append(pairs, fmt.Sprintf("'%s', data->'%s'", f, f))
	}
	return "jsonb_strip_nulls(jsonb_build_object(" + strings.Join(pairs, ", ") + "))", nil
}

// predicate renders one clause. Equality and set membership compare the
// text form of the field; range comparisons use jsonb ordering so numbers
// compare numerically and strings lexically.
func predicate(c query.FilterClause) (squirrel.Sqlizer, error) {
	if !identifier.MatchString(c.Field) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidField, c.Field)
	}
	text := fmt.Sprintf("data->>'%s'", c.Field)
	value := fmt.Sprintf("data->'%s'", c.Field)

	switch c.Comparator {
	case query.Equal:
		return squirrel.Eq{text: c.Value}, nil
	case query.GreaterOrEqual:
		return squirrel.Expr(value+" >= ?::jsonb", jsonOperand(c.Value)), nil
	case query.LessOrEqual:
		return squirrel.Expr(value+" <= ?::jsonb", jsonOperand(c.Value)), nil
	case query.LessThan:
		return squirrel.Expr(value+" < ?::jsonb", jsonOperand(c.Value)), nil
	case query.OneOf:
		if len(c.Values) == 0 {
			return squirrel.Expr("FALSE"), nil
		}
		return squirrel.Eq{text: c.Values}, nil
	case query.ArrayContainsAny:
		if len(c.Values) == 0 {
			return squirrel.Expr("FALSE"), nil
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(c.Values)), ",")
		args := make([]any, len(c.Values))
		for i, v := range c.Values {
			args[i] = v
		}
		return squirrel.Expr(
			fmt.Sprintf("jsonb_typeof(%s) = 'array' AND jsonb_exists_any(%s, ARRAY[%s]::text[])", value, value, placeholders),
			args...,
		), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedComparator, c.Comparator)
}

// jsonOperand encodes a scalar operand as a JSON literal, numeric when it is a JSON number.
func jsonOperand(v string) string {
	if jsonNumber.MatchString(v) {
		return v
	}
	b, _ := json.Marshal(v)
	return string(b)
}
