package schema

// Customers is the canonical customer entity. Identity is the integer
// customer_id; the JSON feed spells several columns two ways, so the alias
// tables below carry both.
var Customers = Entity{
	Name:    "customers",
	Table:   "customers",
	Key:     "customer_id",
	Recency: []string{"registration_date"},
	Indexes: [][]string{{"email"}, {"status"}},
	Fields: []Field{
		{Name: "customer_id", Kind: KindInt, Aliases: []string{"cust_id"}, Required: true},
		{Name: "email", Kind: KindText, Aliases: []string{"email_address"}},
		{Name: "phone", Kind: KindText, Aliases: []string{"phone_number"}},
		{Name: "full_name", Kind: KindText, Aliases: []string{"customer_name"}},
		{Name: "address", Kind: KindText},
		{Name: "city", Kind: KindText},
		{Name: "state", Kind: KindText},
		{Name: "zip_code", Kind: KindText, Aliases: []string{"postal_code"}},
		{Name: "registration_date", Kind: KindDate, Aliases: []string{"reg_date"}},
		{Name: "status", Kind: KindText, Aliases: []string{"customer_status"}},
		{Name: "total_orders", Kind: KindInt},
		{Name: "total_spent", Kind: KindDecimal},
		{Name: "loyalty_points", Kind: KindInt},
		{Name: "preferred_payment", Kind: KindText},
		{Name: "age", Kind: KindInt},
		{Name: "birth_date", Kind: KindDate},
		{Name: "gender", Kind: KindText},
		{Name: "segment", Kind: KindText},
	},
}

// Products is the canonical product entity. Identity is the string product_id.
var Products = Entity{
	Name:    "products",
	Table:   "products",
	Key:     "product_id",
	Recency: []string{"last_updated", "created_date"},
	Indexes: [][]string{{"category"}, {"brand"}},
	Fields: []Field{
		{Name: "product_id", Kind: KindText, Aliases: []string{"item_id"}, Required: true},
		{Name: "product_name", Kind: KindText, Aliases: []string{"item_name"}},
		{Name: "description", Kind: KindText},
		{Name: "category", Kind: KindText, Aliases: []string{"product_category"}},
		{Name: "brand", Kind: KindText, Aliases: []string{"manufacturer"}},
		{Name: "price", Kind: KindDecimal, Aliases: []string{"list_price"}},
		{Name: "cost", Kind: KindDecimal},
		{Name: "weight", Kind: KindDecimal},
		{Name: "dimensions", Kind: KindText},
		{Name: "color", Kind: KindText},
		{Name: "size", Kind: KindText},
		{Name: "stock_quantity", Kind: KindInt, Aliases: []string{"stock_level"}},
		{Name: "reorder_level", Kind: KindInt},
		{Name: "supplier_id", Kind: KindText},
		{Name: "created_date", Kind: KindDate},
		{Name: "last_updated", Kind: KindDatetime},
		{Name: "is_active", Kind: KindBool},
		{Name: "rating", Kind: KindDecimal},
	},
}

// Orders is the canonical order entity. Identity is the string order_id;
// customer_id and product_id are foreign keys into Customers and Products.
var Orders = Entity{
	Name:    "orders",
	Table:   "orders",
	Key:     "order_id",
	Recency: []string{"order_datetime", "order_date"},
	ForeignKeys: []ForeignKey{
		{Field: "customer_id", RefTable: "customers", RefField: "customer_id"},
		{Field: "product_id", RefTable: "products", RefField: "product_id"},
	},
	Indexes: [][]string{{"customer_id"}, {"product_id"}, {"order_date"}},
	Fields: []Field{
		{Name: "order_id", Kind: KindText, Aliases: []string{"ord_id"}, Required: true},
		{Name: "customer_id", Kind: KindInt, Aliases: []string{"cust_id"}, Required: true},
		{Name: "product_id", Kind: KindText, Aliases: []string{"item_id"}, Required: true},
		{Name: "order_date", Kind: KindDate},
		{Name: "order_datetime", Kind: KindDatetime},
		{Name: "quantity", Kind: KindInt, Aliases: []string{"qty"}},
		{Name: "unit_price", Kind: KindDecimal, Aliases: []string{"price"}},
		{Name: "total_amount", Kind: KindDecimal, Aliases: []string{"order_total"}},
		{Name: "shipping_cost", Kind: KindDecimal},
		{Name: "tax", Kind: KindDecimal},
		{Name: "discount", Kind: KindDecimal},
		{Name: "status", Kind: KindText, Aliases: []string{"order_status"}},
		{Name: "payment_method", Kind: KindText},
		{Name: "shipping_address", Kind: KindText},
		{Name: "notes", Kind: KindText},
		{Name: "tracking_number", Kind: KindText},
	},
}

// ReconciliationAliases maps the reconciliation feed's column vocabulary onto
// the canonical order fields. The feed duplicates orders under entirely
// different names; records mapped through this table merge into the orders
// stream ahead of deduplication, where the newest-wins policy reconciles any
// overlap with the primary feed.
var ReconciliationAliases = map[string][]string{
	"order_id":       {"transaction_ref"},
	"customer_id":    {"client_reference"},
	"product_id":     {"item_reference"},
	"order_date":     {"transaction_date"},
	"order_datetime": {"last_modified_timestamp"},
	"quantity":       {"quantity_ordered"},
	"unit_price":     {"unit_cost"},
	"total_amount":   {"amount_paid", "total_value"},
	"shipping_cost":  {"shipping_fee"},
	"tax":            {"tax_amount"},
	"discount":       {"discount_applied"},
	"status":         {"delivery_status"},
	"notes":          {"notes_comments"},
}

// Entities lists the destination entities in foreign-key dependency order:
// referenced tables first, orders last.
var Entities = []Entity{Customers, Products, Orders}
