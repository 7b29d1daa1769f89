package products

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// scans one product row; the column order must match the SELECT lists in
// queries.go
func scanProduct(row pgx.Row, p *Product) error {
	return row.Scan(
		&p.ID,
		&p.ExternalID,
		&p.Title,
		&p.Price,
		&p.ComparePrice,
		&p.Description,
		&p.Features,
		&p.ImageURL,
		&p.Images,
		&p.Category,
		&p.Vendor,
		&p.ProductType,
		&p.Tags,
		&p.URL,
	)
}

func (r *Repository) List(ctx context.Context, limit, offset int) ([]Product, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, queryCount).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, queryList, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()
	var list []Product

	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, 0, err
		}

		list = append(list, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

// returns every product in catalog insertion order; the catalog is small
// enough that the text ranker scores it in memory
func (r *Repository) ListAll(ctx context.Context) ([]Product, error) {
	rows, err := r.db.Query(ctx, queryListAll)
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	var list []Product

	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}

		list = append(list, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (r *Repository) Get(ctx context.Context, id int) (*Product, error) {
	var p Product

	err := scanProduct(r.db.QueryRow(ctx, queryGet, id), &p)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}

	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *Repository) GetByExternalID(ctx context.Context, externalID string) (*Product, error) {
	var p Product

	err := scanProduct(r.db.QueryRow(ctx, queryGetByExternalID, externalID), &p)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}

	if err != nil {
		return nil, err
	}

	return &p, nil
}

// substring search over title, description and category
func (r *Repository) Search(ctx context.Context, query string, limit int) ([]Product, error) {
	rows, err := r.db.Query(ctx, querySearch, "%"+query+"%", limit)
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	var list []Product

	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}

		list = append(list, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// inserts or updates a product keyed by its external catalog id; an update
// leaves any stored embedding untouched
func (r *Repository) Upsert(ctx context.Context, req UpsertProductRequest) (*Product, error) {
	// initialize empty arrays if nil to avoid null in JSON responses
	images := req.Images

	if images == nil {
		images = []string{}
	}

	tags := req.Tags

	if tags == nil {
		tags = []string{}
	}

	var p Product

	err := scanProduct(r.db.QueryRow(
		ctx,
		queryUpsert,
		req.ExternalID,
		req.Title,
		req.Price,
		req.ComparePrice,
		req.Description,
		req.Features,
		req.ImageURL,
		images,
		req.Category,
		req.Vendor,
		req.ProductType,
		tags,
		req.URL,
	), &p)

	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, queryCount).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}

func (r *Repository) CountWithoutEmbedding(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, queryCountWithoutEmbedding).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}

// returns unenriched products, oldest first, for the enrichment pipeline
func (r *Repository) ListWithoutEmbedding(ctx context.Context, limit int) ([]Product, error) {
	rows, err := r.db.Query(ctx, queryListWithoutEmbedding, limit)
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	var list []Product

	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}

		list = append(list, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (r *Repository) UpdateEmbedding(ctx context.Context, id int, embedding []float32) error {
	_, err := r.db.Exec(ctx, queryUpdateEmbedding, pgvector.NewVector(embedding), id)
	return err
}

// returns up to k enriched products ordered by ascending embedding distance
// to the query vector
func (r *Repository) NearestNeighbors(ctx context.Context, queryVector []float32, k int) ([]NearestResult, error) {
	rows, err := r.db.Query(ctx, queryNearestNeighbors, pgvector.NewVector(queryVector), k)
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	var results []NearestResult

	for rows.Next() {
		var res NearestResult
		err := rows.Scan(
			&res.Product.ID,
			&res.Product.ExternalID,
			&res.Product.Title,
			&res.Product.Price,
			&res.Product.ComparePrice,
			&res.Product.Description,
			&res.Product.Features,
			&res.Product.ImageURL,
			&res.Product.Images,
			&res.Product.Category,
			&res.Product.Vendor,
			&res.Product.ProductType,
			&res.Product.Tags,
			&res.Product.URL,
			&res.Distance,
		)

		if err != nil {
			return nil, err
		}

		results = append(results, res)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
