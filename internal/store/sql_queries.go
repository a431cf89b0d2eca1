// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Limitclean Authors

package store

const (
	createUser = `
		INSERT INTO users (
			id,
			name,
			email,
			username,
			role,
			pass_hash,
			phone,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	putUser = `
		INSERT INTO users (
			id,
			name,
			email,
			username,
			role,
			pass_hash,
			phone,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name      = excluded.name,
			email     = excluded.email,
			username  = excluded.username,
			role      = excluded.role,
			pass_hash = excluded.pass_hash,
			phone     = excluded.phone;`

	findUserByID = `
		SELECT id, name, email, username, role, pass_hash, phone, created_at
		FROM users
		WHERE id = ?;`

	findUserByUsername = `
		SELECT id, name, email, username, role, pass_hash, phone, created_at
		FROM users
		WHERE username = ?;`

	getAllUsers = `
		SELECT id, name, email, username, role, pass_hash, phone, created_at
		FROM users;`

	putEntry = `
		INSERT INTO entries (
			id,
			type,
			document,
			name,
			phone,
			owner_label,
			gross_amount,
			discount_amount,
			net_amount,
			status,
			done,
			created_at,
			updated_at,
			created_by
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type            = excluded.type,
			document        = excluded.document,
			name            = excluded.name,
			phone           = excluded.phone,
			owner_label     = excluded.owner_label,
			gross_amount    = excluded.gross_amount,
			discount_amount = excluded.discount_amount,
			net_amount      = excluded.net_amount,
			status          = excluded.status,
			done            = excluded.done,
			updated_at      = excluded.updated_at,
			created_by      = excluded.created_by;`

	getEntry = `
		SELECT id, type, document, name, phone, owner_label,
			gross_amount, discount_amount, net_amount,
			status, done, created_at, updated_at, created_by
		FROM entries
		WHERE id = ?;`

	getAllEntries = `
		SELECT id, type, document, name, phone, owner_label,
			gross_amount, discount_amount, net_amount,
			status, done, created_at, updated_at, created_by
		FROM entries;`

	updateEntryStatus = `
		UPDATE entries SET
			status     = ?,
			updated_at = ?
		WHERE id = ?;`

	deleteEntry = `
		DELETE FROM entries
		WHERE id = ?;`

	clearEntries = `
		DELETE FROM entries;`

	putRepresentative = `
		INSERT INTO representatives (id, user_id, default_discount)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id          = excluded.user_id,
			default_discount = excluded.default_discount;`

	getRepresentativeByUserID = `
		SELECT id, user_id, default_discount
		FROM representatives
		WHERE user_id = ?;`

	getAllRepresentatives = `
		SELECT id, user_id, default_discount
		FROM representatives;`

	deleteRepresentative = `
		DELETE FROM representatives
		WHERE id = ?;`

	putSeller = `
		INSERT INTO sellers (id, user_id, representative_id, seller_discount)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id           = excluded.user_id,
			representative_id = excluded.representative_id,
			seller_discount   = excluded.seller_discount;`

	getSellerByUserID = `
		SELECT id, user_id, representative_id, seller_discount
		FROM sellers
		WHERE user_id = ?;`

	getSellersByRepresentativeID = `
		SELECT id, user_id, representative_id, seller_discount
		FROM sellers
		WHERE representative_id = ?;`

	getAllSellers = `
		SELECT id, user_id, representative_id, seller_discount
		FROM sellers;`

	deleteSeller = `
		DELETE FROM sellers
		WHERE id = ?;`

	putTicket = `
		INSERT INTO tickets (id, user_id, title, description, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id     = excluded.user_id,
			title       = excluded.title,
			description = excluded.description;`

	getAllTickets = `
		SELECT id, user_id, title, description, created_at
		FROM tickets;`

	deleteTicket = `
		DELETE FROM tickets
		WHERE id = ?;`

	putFile = `
		INSERT INTO files (id, entry_id, ticket_id, name, mime, size, blob)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			entry_id  = excluded.entry_id,
			ticket_id = excluded.ticket_id,
			name      = excluded.name,
			mime      = excluded.mime,
			size      = excluded.size,
			blob      = excluded.blob;`

	getAllFiles = `
		SELECT id, entry_id, ticket_id, name, mime, size, blob
		FROM files;`

	getFilesByEntryID = `
		SELECT id, entry_id, ticket_id, name, mime, size, blob
		FROM files
		WHERE entry_id = ?;`

	getFilesByTicketID = `
		SELECT id, entry_id, ticket_id, name, mime, size, blob
		FROM files
		WHERE ticket_id = ?;`

	getFile = `
		SELECT id, entry_id, ticket_id, name, mime, size, blob
		FROM files
		WHERE id = ?;`

	deleteFile = `
		DELETE FROM files
		WHERE id = ?;`

	getSetting = `
		SELECT value
		FROM settings
		WHERE key = ?;`

	setSetting = `
		INSERT INTO settings (key, value)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value;`

	deleteSetting = `
		DELETE FROM settings
		WHERE key = ?;`
)
