package store

import (
	"database/sql"
	"log"
	"sync"

	"github.com/example/payment-es/internal/readmodel"
)

// PostgresReadStore implements ReadStoreInterface using PostgreSQL
type PostgresReadStore struct {
	db *sql.DB
	mu sync.RWMutex
}

func NewPostgresReadStore(db *sql.DB) *PostgresReadStore {
	return &PostgresReadStore{db: db}
}

// Set stores a read model
func (rs *PostgresReadStore) Set(collection, id string, data any) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.setUnsafe(collection, id, data)
}

func (rs *PostgresReadStore) setUnsafe(collection, id string, data any) {
	switch collection {
	case "payment_intents":
		rs.setPaymentIntent(id, data.(*readmodel.PaymentIntentReadModel))
	case "payment_methods":
		rs.setPaymentMethod(id, data.(*readmodel.PaymentMethodReadModel))
	case "subscriptions":
		rs.setSubscription(id, data.(*readmodel.SubscriptionReadModel))
	case "refunds":
		rs.setRefund(id, data.(*readmodel.RefundReadModel))
	}
}

// Get retrieves a read model by id
func (rs *PostgresReadStore) Get(collection, id string) (any, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.getUnsafe(collection, id)
}

func (rs *PostgresReadStore) getUnsafe(collection, id string) (any, bool) {
	switch collection {
	case "payment_intents":
		return rs.getPaymentIntent(id)
	case "payment_methods":
		return rs.getPaymentMethod(id)
	case "subscriptions":
		return rs.getSubscription(id)
	case "refunds":
		return rs.getRefund(id)
	}
	return nil, false
}

// GetAll retrieves all items in a collection
func (rs *PostgresReadStore) GetAll(collection string) []any {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	switch collection {
	case "payment_intents":
		return rs.getAllPaymentIntents()
	case "payment_methods":
		return rs.getAllPaymentMethods()
	case "subscriptions":
		return rs.getAllSubscriptions()
	case "refunds":
		return rs.getAllRefunds()
	}
	return nil
}

// Delete removes a read model
func (rs *PostgresReadStore) Delete(collection, id string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	var tableName string
	switch collection {
	case "payment_intents":
		tableName = "read_payment_intents"
	case "payment_methods":
		tableName = "read_payment_methods"
	case "subscriptions":
		tableName = "read_subscriptions"
	case "refunds":
		tableName = "read_refunds"
	default:
		return
	}

	if _, err := rs.db.Exec("DELETE FROM "+tableName+" WHERE id = $1", id); err != nil {
		log.Printf("[PostgresReadStore] Error deleting from %s: %v", collection, err)
	}
}

// Update modifies a read model using an update function
func (rs *PostgresReadStore) Update(collection, id string, updateFn func(current any) any) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	current, found := rs.getUnsafe(collection, id)
	if !found {
		return false
	}
	rs.setUnsafe(collection, id, updateFn(current))
	return true
}

func (rs *PostgresReadStore) setPaymentIntent(id string, m *readmodel.PaymentIntentReadModel) {
	_, err := rs.db.Exec(`
		INSERT INTO read_payment_intents (id, status, amount, currency, description, tender_id, subscription_id, decline_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			amount = EXCLUDED.amount,
			currency = EXCLUDED.currency,
			description = EXCLUDED.description,
			tender_id = EXCLUDED.tender_id,
			subscription_id = EXCLUDED.subscription_id,
			decline_reason = EXCLUDED.decline_reason,
			updated_at = EXCLUDED.updated_at`,
		id, m.Status, m.Amount, m.Currency, m.Description, m.TenderID, m.SubscriptionID, m.DeclineReason, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		log.Printf("[PostgresReadStore] Error upserting payment intent %s: %v", id, err)
	}
}

func (rs *PostgresReadStore) getPaymentIntent(id string) (any, bool) {
	m := &readmodel.PaymentIntentReadModel{}
	err := rs.db.QueryRow(`
		SELECT id, status, amount, currency, description, tender_id, subscription_id, decline_reason, created_at, updated_at
		FROM read_payment_intents WHERE id = $1`, id).
		Scan(&m.ID, &m.Status, &m.Amount, &m.Currency, &m.Description, &m.TenderID, &m.SubscriptionID, &m.DeclineReason, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		log.Printf("[PostgresReadStore] Error getting payment intent %s: %v", id, err)
		return nil, false
	}
	return m, true
}

func (rs *PostgresReadStore) getAllPaymentIntents() []any {
	rows, err := rs.db.Query(`
		SELECT id, status, amount, currency, description, tender_id, subscription_id, decline_reason, created_at, updated_at
		FROM read_payment_intents ORDER BY created_at`)
	if err != nil {
		log.Printf("[PostgresReadStore] Error listing payment intents: %v", err)
		return nil
	}
	defer rows.Close()

	var items []any
	for rows.Next() {
		m := &readmodel.PaymentIntentReadModel{}
		if err := rows.Scan(&m.ID, &m.Status, &m.Amount, &m.Currency, &m.Description, &m.TenderID, &m.SubscriptionID, &m.DeclineReason, &m.CreatedAt, &m.UpdatedAt); err != nil {
			log.Printf("[PostgresReadStore] Error scanning payment intent: %v", err)
			continue
		}
		items = append(items, m)
	}
	return items
}

func (rs *PostgresReadStore) setPaymentMethod(id string, m *readmodel.PaymentMethodReadModel) {
	_, err := rs.db.Exec(`
		INSERT INTO read_payment_methods (id, status, email, brand, last4, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			email = EXCLUDED.email,
			brand = EXCLUDED.brand,
			last4 = EXCLUDED.last4,
			updated_at = EXCLUDED.updated_at`,
		id, m.Status, m.Email, m.Brand, m.Last4, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		log.Printf("[PostgresReadStore] Error upserting payment method %s: %v", id, err)
	}
}

func (rs *PostgresReadStore) getPaymentMethod(id string) (any, bool) {
	m := &readmodel.PaymentMethodReadModel{}
	err := rs.db.QueryRow(`
		SELECT id, status, email, brand, last4, created_at, updated_at
		FROM read_payment_methods WHERE id = $1`, id).
		Scan(&m.ID, &m.Status, &m.Email, &m.Brand, &m.Last4, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		log.Printf("[PostgresReadStore] Error getting payment method %s: %v", id, err)
		return nil, false
	}
	return m, true
}

func (rs *PostgresReadStore) getAllPaymentMethods() []any {
	rows, err := rs.db.Query(`
		SELECT id, status, email, brand, last4, created_at, updated_at
		FROM read_payment_methods ORDER BY created_at`)
	if err != nil {
		log.Printf("[PostgresReadStore] Error listing payment methods: %v", err)
		return nil
	}
	defer rows.Close()

	var items []any
	for rows.Next() {
		m := &readmodel.PaymentMethodReadModel{}
		if err := rows.Scan(&m.ID, &m.Status, &m.Email, &m.Brand, &m.Last4, &m.CreatedAt, &m.UpdatedAt); err != nil {
			log.Printf("[PostgresReadStore] Error scanning payment method: %v", err)
			continue
		}
		items = append(items, m)
	}
	return items
}

func (rs *PostgresReadStore) setSubscription(id string, m *readmodel.SubscriptionReadModel) {
	_, err := rs.db.Exec(`
		INSERT INTO read_subscriptions (id, plan_id, payment_method_id, amount, currency, payments_count, last_paid_at, canceled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			plan_id = EXCLUDED.plan_id,
			payment_method_id = EXCLUDED.payment_method_id,
			amount = EXCLUDED.amount,
			currency = EXCLUDED.currency,
			payments_count = EXCLUDED.payments_count,
			last_paid_at = EXCLUDED.last_paid_at,
			canceled = EXCLUDED.canceled,
			updated_at = EXCLUDED.updated_at`,
		id, m.PlanID, m.PaymentMethodID, m.Amount, m.Currency, m.PaymentsCount, m.LastPaidAt, m.Canceled, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		log.Printf("[PostgresReadStore] Error upserting subscription %s: %v", id, err)
	}
}

func (rs *PostgresReadStore) getSubscription(id string) (any, bool) {
	m := &readmodel.SubscriptionReadModel{}
	err := rs.db.QueryRow(`
		SELECT id, plan_id, payment_method_id, amount, currency, payments_count, last_paid_at, canceled, created_at, updated_at
		FROM read_subscriptions WHERE id = $1`, id).
		Scan(&m.ID, &m.PlanID, &m.PaymentMethodID, &m.Amount, &m.Currency, &m.PaymentsCount, &m.LastPaidAt, &m.Canceled, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		log.Printf("[PostgresReadStore] Error getting subscription %s: %v", id, err)
		return nil, false
	}
	return m, true
}

func (rs *PostgresReadStore) getAllSubscriptions() []any {
	rows, err := rs.db.Query(`
		SELECT id, plan_id, payment_method_id, amount, currency, payments_count, last_paid_at, canceled, created_at, updated_at
		FROM read_subscriptions ORDER BY created_at`)
	if err != nil {
		log.Printf("[PostgresReadStore] Error listing subscriptions: %v", err)
		return nil
	}
	defer rows.Close()

	var items []any
	for rows.Next() {
		m := &readmodel.SubscriptionReadModel{}
		if err := rows.Scan(&m.ID, &m.PlanID, &m.PaymentMethodID, &m.Amount, &m.Currency, &m.PaymentsCount, &m.LastPaidAt, &m.Canceled, &m.CreatedAt, &m.UpdatedAt); err != nil {
			log.Printf("[PostgresReadStore] Error scanning subscription: %v", err)
			continue
		}
		items = append(items, m)
	}
	return items
}

func (rs *PostgresReadStore) setRefund(id string, m *readmodel.RefundReadModel) {
	_, err := rs.db.Exec(`
		INSERT INTO read_refunds (id, payment_intent_id, status, amount, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			payment_intent_id = EXCLUDED.payment_intent_id,
			status = EXCLUDED.status,
			amount = EXCLUDED.amount,
			currency = EXCLUDED.currency,
			updated_at = EXCLUDED.updated_at`,
		id, m.PaymentIntentID, m.Status, m.Amount, m.Currency, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		log.Printf("[PostgresReadStore] Error upserting refund %s: %v", id, err)
	}
}

func (rs *PostgresReadStore) getRefund(id string) (any, bool) {
	m := &readmodel.RefundReadModel{}
	err := rs.db.QueryRow(`
		SELECT id, payment_intent_id, status, amount, currency, created_at, updated_at
		FROM read_refunds WHERE id = $1`, id).
		Scan(&m.ID, &m.PaymentIntentID, &m.Status, &m.Amount, &m.Currency, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		log.Printf("[PostgresReadStore] Error getting refund %s: %v", id, err)
		return nil, false
	}
	return m, true
}

func (rs *PostgresReadStore) getAllRefunds() []any {
	rows, err := rs.db.Query(`
		SELECT id, payment_intent_id, status, amount, currency, created_at, updated_at
		FROM read_refunds ORDER BY created_at`)
	if err != nil {
		log.Printf("[PostgresReadStore] Error listing refunds: %v", err)
		return nil
	}
	defer rows.Close()

	var items []any
	for rows.Next() {
		m := &readmodel.RefundReadModel{}
		if err := rows.Scan(&m.ID, &m.PaymentIntentID, &m.Status, &m.Amount, &m.Currency, &m.CreatedAt, &m.UpdatedAt); err != nil {
			log.Printf("[PostgresReadStore] Error scanning refund: %v", err)
			continue
		}
		items = append(items, m)
	}
	return items
}
