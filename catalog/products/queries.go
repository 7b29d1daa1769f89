package products

const (
	queryList = `
		SELECT id, external_id, title, price, compare_price, COALESCE(description, ''), COALESCE(features, ''),
		       COALESCE(image_url, ''), COALESCE(images, '{}'), COALESCE(category, ''), COALESCE(vendor, ''),
		       COALESCE(product_type, ''), COALESCE(tags, '{}'), COALESCE(url, '')
		FROM products
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	queryListAll = `
		SELECT id, external_id, title, price, compare_price, COALESCE(description, ''), COALESCE(features, ''),
		       COALESCE(image_url, ''), COALESCE(images, '{}'), COALESCE(category, ''), COALESCE(vendor, ''),
		       COALESCE(product_type, ''), COALESCE(tags, '{}'), COALESCE(url, '')
		FROM products
		ORDER BY id
	`

	queryGet = `
		SELECT id, external_id, title, price, compare_price, COALESCE(description, ''), COALESCE(features, ''),
		       COALESCE(image_url, ''), COALESCE(images, '{}'), COALESCE(category, ''), COALESCE(vendor, ''),
		       COALESCE(product_type, ''), COALESCE(tags, '{}'), COALESCE(url, '')
		FROM products
		WHERE id = $1
	`

	queryGetByExternalID = `
		SELECT id, external_id, title, price, compare_price, COALESCE(description, ''), COALESCE(features, ''),
		       COALESCE(image_url, ''), COALESCE(images, '{}'), COALESCE(category, ''), COALESCE(vendor, ''),
		       COALESCE(product_type, ''), COALESCE(tags, '{}'), COALESCE(url, '')
		FROM products
		WHERE external_id = $1
	`

	querySearch = `
		SELECT id, external_id, title, price, compare_price, COALESCE(description, ''), COALESCE(features, ''),
		       COALESCE(image_url, ''), COALESCE(images, '{}'), COALESCE(category, ''), COALESCE(vendor, ''),
		       COALESCE(product_type, ''), COALESCE(tags, '{}'), COALESCE(url, '')
		FROM products
		WHERE title ILIKE $1 OR description ILIKE $1 OR category ILIKE $1
		ORDER BY id
		LIMIT $2
	`

	queryUpsert = `
		INSERT INTO products (
			external_id, title, price, compare_price, description, features,
			image_url, images, category, vendor, product_type, tags, url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (external_id) DO UPDATE SET
			title = EXCLUDED.title,
			price = EXCLUDED.price,
			compare_price = EXCLUDED.compare_price,
			description = EXCLUDED.description,
			features = EXCLUDED.features,
			image_url = EXCLUDED.image_url,
			images = EXCLUDED.images,
			category = EXCLUDED.category,
			vendor = EXCLUDED.vendor,
			product_type = EXCLUDED.product_type,
			tags = EXCLUDED.tags,
			url = EXCLUDED.url
		RETURNING id, external_id, title, price, compare_price, COALESCE(description, ''), COALESCE(features, ''),
		          COALESCE(image_url, ''), COALESCE(images, '{}'), COALESCE(category, ''), COALESCE(vendor, ''),
		          COALESCE(product_type, ''), COALESCE(tags, '{}'), COALESCE(url, '')
	`

	queryCount = `
		SELECT COUNT(*) FROM products
	`

	queryCountWithoutEmbedding = `
		SELECT COUNT(*) FROM products WHERE embedding IS NULL
	`

	queryListWithoutEmbedding = `
		SELECT id, external_id, title, price, compare_price, COALESCE(description, ''), COALESCE(features, ''),
		       COALESCE(image_url, ''), COALESCE(images, '{}'), COALESCE(category, ''), COALESCE(vendor, ''),
		       COALESCE(product_type, ''), COALESCE(tags, '{}'), COALESCE(url, '')
		FROM products
		WHERE embedding IS NULL
		ORDER BY id
		LIMIT $1
	`

	queryUpdateEmbedding = `
		UPDATE products
		SET embedding = $1
		WHERE id = $2
	`

	// pgvector cosine distance; NULL embeddings are excluded so unenriched
	// products never appear in vector retrieval
	queryNearestNeighbors = `
		SELECT id, external_id, title, price, compare_price, COALESCE(description, ''), COALESCE(features, ''),
		       COALESCE(image_url, ''), COALESCE(images, '{}'), COALESCE(category, ''), COALESCE(vendor, ''),
		       COALESCE(product_type, ''), COALESCE(tags, '{}'), COALESCE(url, ''),
		       embedding <=> $1 AS distance
		FROM products
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1
		LIMIT $2
	`
)
