package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(255) UNIQUE NOT NULL,
		provider VARCHAR(50) NOT NULL,
		provider_id VARCHAR(255) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(provider, provider_id)
	)`,

	// Profile rows share their primary key with users: one profile per user,
	// created together with the user row.
	`CREATE TABLE IF NOT EXISTS profiles (
		id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		first_name VARCHAR(255),
		last_name VARCHAR(255),
		bio TEXT,
		avatar_url VARCHAR(500),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	// The UNIQUE(user_id, role) constraint is the sole guard for the
	// exactly-once role grant: a duplicate insert means "already has role".
	`CREATE TABLE IF NOT EXISTS user_roles (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role VARCHAR(50) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(user_id, role)
	)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		description TEXT,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS datasets (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		seller_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		category_id UUID REFERENCES categories(id) ON DELETE SET NULL,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
		format VARCHAR(20) NOT NULL,
		file_url VARCHAR(500) NOT NULL,
		sample_url VARCHAR(500),
		thumbnail_url VARCHAR(500),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	// One purchase per (buyer, dataset). A duplicate insert means "already
	// purchased" and callers recover the existing row instead of failing.
	`CREATE TABLE IF NOT EXISTS purchases (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		buyer_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		dataset_id UUID NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
		amount NUMERIC(10,2) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(buyer_id, dataset_id)
	)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		message TEXT NOT NULL,
		type VARCHAR(20) NOT NULL DEFAULT 'info',
		read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS reviews (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		dataset_id UUID NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		rating INTEGER NOT NULL CHECK (rating >= 1 AND rating <= 5),
		comment TEXT,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(dataset_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token_hash VARCHAR(255) NOT NULL UNIQUE,
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_user_roles_user_id ON user_roles(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_datasets_seller_id ON datasets(seller_id)`,
	`CREATE INDEX IF NOT EXISTS idx_datasets_category_id ON datasets(category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_datasets_format ON datasets(format)`,
	`CREATE INDEX IF NOT EXISTS idx_purchases_buyer_id ON purchases(buyer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_purchases_dataset_id ON purchases(dataset_id)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user_unread ON notifications(user_id) WHERE read = FALSE`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_dataset_id ON reviews(dataset_id)`,
	`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user_id ON refresh_tokens(user_id)`,

	// Seed default categories so the upload form has something to offer on a
	// fresh install.
	`INSERT INTO categories (name, description)
	SELECT v.name, v.description
	FROM (VALUES
		('Finance', 'Market data, pricing histories, and financial indicators'),
		('Healthcare', 'Clinical, public-health, and medical research data'),
		('Retail', 'Sales, inventory, and consumer behavior data'),
		('Geospatial', 'Maps, locations, and geographic features'),
		('Social Media', 'Engagement, sentiment, and network data')
	) AS v(name, description)
	WHERE NOT EXISTS (SELECT 1 FROM categories)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
