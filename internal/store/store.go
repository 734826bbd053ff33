package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/opentocoder/storefront/internal/models"
)

//go:embed schema.sql
var schema string

type Store struct {
	db *sqlx.DB
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Migrate applies the embedded schema
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying database connection
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}

// CreateUser persists a new user
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return s.db.GetContext(ctx, &user.CreatedAt, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Role)
}

// GetUserByEmail retrieves a user by email
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT * FROM users WHERE email = $1", email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailExists reports whether a user with the email is registered
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", email)
	return exists, err
}

// UsernameExists reports whether the username is taken
func (s *Store) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)", username)
	return exists, err
}

// CreateProduct persists a new catalog product
func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products (id, name, description, price, stock, category, image_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	return s.db.QueryRowxContext(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Stock, p.Category, p.ImageURL, p.IsActive).
		Scan(&p.CreatedAt, &p.UpdatedAt)
}

// GetProductByID retrieves a product by ID
func (s *Store) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, "SELECT * FROM products WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts retrieves a page of active products and the total count.
// sortBy/sortOrder are validated against a fixed set; anything else falls
// back to newest-first.
func (s *Store) ListProducts(ctx context.Context, page, limit int, sortBy, sortOrder string) ([]models.Product, int, error) {
	offset := (page - 1) * limit

	orderClause := "ORDER BY created_at DESC"
	switch {
	case sortBy == "price" && sortOrder == "desc":
		orderClause = "ORDER BY price DESC"
	case sortBy == "price":
		orderClause = "ORDER BY price ASC"
	case sortBy == "name" && sortOrder == "desc":
		orderClause = "ORDER BY name DESC"
	case sortBy == "name":
		orderClause = "ORDER BY name ASC"
	}

	query := fmt.Sprintf(
		"SELECT * FROM products WHERE is_active %s LIMIT $1 OFFSET $2", orderClause)

	var products []models.Product
	if err := s.db.SelectContext(ctx, &products, query, limit, offset); err != nil {
		return nil, 0, err
	}

	var total int
	if err := s.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM products WHERE is_active"); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// SearchProducts retrieves active products matching the query by name or
// description
func (s *Store) SearchProducts(ctx context.Context, query string, limit int) ([]models.Product, error) {
	pattern := "%" + query + "%"

	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		`SELECT * FROM products
		 WHERE is_active AND (name ILIKE $1 OR description ILIKE $1)
		 LIMIT $2`, pattern, limit)
	return products, err
}

// ListProductsByCategory retrieves a page of active products in a category
func (s *Store) ListProductsByCategory(ctx context.Context, category string, page, limit int) ([]models.Product, int, error) {
	offset := (page - 1) * limit

	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		`SELECT * FROM products WHERE is_active AND category = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, category, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var total int
	err = s.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM products WHERE is_active AND category = $1", category)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// ListCategories retrieves the distinct categories of active products
func (s *Store) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := s.db.SelectContext(ctx, &categories,
		"SELECT DISTINCT category FROM products WHERE is_active ORDER BY category")
	return categories, err
}

// UpdateProduct updates a product's catalog fields. It never touches stock;
// stock moves only inside the placement and cancellation transactions.
func (s *Store) UpdateProduct(ctx context.Context, id uuid.UUID, name string, price int64) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE products SET name = $1, price = $2, updated_at = NOW() WHERE id = $3",
		name, price, id)
	return err
}
