package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dpetrovv/blog-api/internal/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateUser = errors.New("user already exists")
)

const uniqueViolation = "23505"

type Store struct {
	pool *pgxpool.Pool
}

// Pool returns the underlying pgxpool.Pool
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// User persistence

func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}

	const query = `
		INSERT INTO users (id, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id::text, username, password_hash, created_at
	`

	var created models.User
	err := s.pool.QueryRow(ctx, query, uuid.NewString(), username, passwordHash).Scan(
		&created.ID,
		&created.Username,
		&created.PasswordHash,
		&created.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &created, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}
	const query = `
		SELECT id::text, username, password_hash, created_at
		FROM users
		WHERE username = $1
	`
	var user models.User
	err := s.pool.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &user, nil
}

// Post persistence

func (s *Store) CreatePost(ctx context.Context, title, content, author string) (*models.BlogPost, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}

	const query = `
		INSERT INTO posts (id, title, content, author)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text, title, content, author, created_at
	`

	var created models.BlogPost
	err := s.pool.QueryRow(ctx, query, uuid.NewString(), title, content, author).Scan(
		&created.ID,
		&created.Title,
		&created.Content,
		&created.Author,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &created, nil
}

func (s *Store) ListPosts(ctx context.Context) ([]models.BlogPost, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}

	const query = `
		SELECT id::text, title, content, author, created_at
		FROM posts
		ORDER BY created_at DESC
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]models.BlogPost, 0)
	for rows.Next() {
		var post models.BlogPost
		if err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Content,
			&post.Author,
			&post.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return posts, nil
}

func (s *Store) GetPost(ctx context.Context, id string) (*models.BlogPost, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	const query = `
		SELECT id::text, title, content, author, created_at
		FROM posts
		WHERE id = $1
	`
	var post models.BlogPost
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.Author,
		&post.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &post, nil
}

func (s *Store) UpdatePost(ctx context.Context, id, title, content string) (*models.BlogPost, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	const query = `
		UPDATE posts
		SET title = $2, content = $3
		WHERE id = $1
		RETURNING id::text, title, content, author, created_at
	`
	var updated models.BlogPost
	err := s.pool.QueryRow(ctx, query, id, title, content).Scan(
		&updated.ID,
		&updated.Title,
		&updated.Content,
		&updated.Author,
		&updated.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return &updated, nil
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	if s.pool == nil {
		return errors.New("db not initialized")
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	tag, err := s.pool.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
