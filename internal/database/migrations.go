package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema is applied in order; every statement is idempotent.  Referential
// behaviour lives here: deleting a category clears places.category_id,
// deleting a place removes its gallery images and reviews.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name       VARCHAR(100) NOT NULL,
		name_ru    VARCHAR(100) NOT NULL,
		slug       VARCHAR(100) NOT NULL,
		published  TINYINT(1)   NOT NULL DEFAULT 1,
		created_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_categories_name (name),
		UNIQUE KEY uq_categories_slug (slug)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS places (
		id               BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name             VARCHAR(200) NOT NULL,
		name_ru          VARCHAR(200) NOT NULL,
		description      TEXT         NOT NULL,
		description_ru   TEXT         NOT NULL,
		category_id      BIGINT UNSIGNED NULL,
		rating           DECIMAL(3,1) NOT NULL DEFAULT 0.0,
		image            VARCHAR(255) NULL,
		address          VARCHAR(300) NOT NULL,
		address_ru       VARCHAR(300) NOT NULL DEFAULT '',
		opening_hours    VARCHAR(200) NOT NULL DEFAULT '',
		opening_hours_ru VARCHAR(200) NOT NULL DEFAULT '',
		entry_fee        VARCHAR(100) NOT NULL DEFAULT '',
		entry_fee_ru     VARCHAR(100) NOT NULL DEFAULT '',
		latitude         DECIMAL(9,6) NULL,
		longitude        DECIMAL(9,6) NULL,
		amenities        JSON         NOT NULL,
		is_open          TINYINT(1)   NOT NULL DEFAULT 1,
		published        TINYINT(1)   NOT NULL DEFAULT 1,
		created_at       DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at       DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_places_published_rating (published, rating),
		CONSTRAINT fk_places_category FOREIGN KEY (category_id)
			REFERENCES categories (id) ON DELETE SET NULL,
		CONSTRAINT chk_places_rating CHECK (rating >= 0 AND rating <= 5)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS place_images (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		place_id   BIGINT UNSIGNED NOT NULL,
		image      VARCHAR(255) NOT NULL,
		caption    VARCHAR(200) NOT NULL DEFAULT '',
		sort_order INT UNSIGNED NOT NULL DEFAULT 0,
		created_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_place_images_order (place_id, sort_order, created_at),
		CONSTRAINT fk_place_images_place FOREIGN KEY (place_id)
			REFERENCES places (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS reviews (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		place_id   BIGINT UNSIGNED NOT NULL,
		author     VARCHAR(100) NOT NULL,
		rating     TINYINT      NOT NULL,
		comment    TEXT         NOT NULL,
		date       DATETIME     NOT NULL,
		published  TINYINT(1)   NOT NULL DEFAULT 1,
		created_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_reviews_place_date (place_id, date),
		CONSTRAINT fk_reviews_place FOREIGN KEY (place_id)
			REFERENCES places (id) ON DELETE CASCADE,
		CONSTRAINT chk_reviews_rating CHECK (rating BETWEEN 1 AND 5)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
}

// Migrate creates any missing tables.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}
