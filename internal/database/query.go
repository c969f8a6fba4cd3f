package database

import "gorm.io/gorm"

// MaxPageSize caps the page size accepted by GetAll.
const MaxPageSize = 100

// Query collects the options applied to a single repository read.
type Query struct {
	scopes     []func(*gorm.DB) *gorm.DB
	preloads   []string
	pageSize   int
	pageNumber int
	untracked  bool
}

// QueryOption configures a Query.
type QueryOption func(*Query)

func buildQuery(opts []QueryOption) *Query {
	q := &Query{pageNumber: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(q)
		}
	}
	return q
}

// Where filters records with a SQL condition, e.g. Where("author_id = ?", 3).
func Where(query any, args ...any) QueryOption {
	return func(q *Query) {
		q.scopes = append(q.scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where(query, args...)
		})
	}
}

// ByID matches the record with the given primary key.
func ByID(id uint) QueryOption {
	return Where("id = ?", id)
}

// NameEquals matches column against value ignoring case.
// column must be a trusted identifier, never user input.
func NameEquals(column, value string) QueryOption {
	return Where("LOWER("+column+") = LOWER(?)", value)
}

// OrderBy sorts by expr before the implicit id ordering.
// expr must be a trusted identifier, never user input.
func OrderBy(expr string) QueryOption {
	return func(q *Query) {
		q.scopes = append(q.scopes, func(db *gorm.DB) *gorm.DB {
			return db.Order(expr)
		})
	}
}

// Include preloads the named associations (e.g. "Books", "User").
func Include(associations ...string) QueryOption {
	return func(q *Query) {
		q.preloads = append(q.preloads, associations...)
	}
}

// Page limits GetAll to one page. A size of 0 returns everything, sizes
// above MaxPageSize are capped and page numbers start at 1.
func Page(size, number int) QueryOption {
	return func(q *Query) {
		if size < 0 {
			size = 0
		}
		if size > MaxPageSize {
			size = MaxPageSize
		}
		if number < 1 {
			number = 1
		}
		q.pageSize = size
		q.pageNumber = number
	}
}

// Untracked excludes the fetched record from the request's unit of work.
func Untracked() QueryOption {
	return func(q *Query) {
		q.untracked = true
	}
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// apply builds the GORM statement. Results are always ordered by id so
// that Get picks the lowest id among several matches.
func (q *Query) apply(db *gorm.DB) *gorm.DB {
	for _, scope := range q.scopes {
		db = scope(db)
	}
	for _, p := range q.preloads {
		db = db.Preload(p, orderByID)
	}
	db = orderByID(db)
	if q.pageSize > 0 {
		db = db.Limit(q.pageSize).Offset(q.pageSize * (q.pageNumber - 1))
	}
	return db
}
