package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldTransactionID = "transaction_id"
	FieldCategoryID    = "category_id"
	FieldCategoryName  = "category_name"
	FieldAmount        = "amount"
	FieldType          = "type"
	FieldTimeFilter    = "time_filter"
	FieldCategory      = "category_filter"
	FieldKey           = "key"
	FieldCount         = "count"
	FieldRevision      = "revision"
	FieldBackend       = "backend"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentStore    = "store"
	ComponentLedger   = "ledger"
	ComponentRegistry = "registry"
	ComponentStorage  = "storage"
	ComponentAdvisor  = "advisor"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
	ComponentCache    = "cache"
)

// Operations defines standard operation names
const (
	OpCreate  = "create"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpList    = "list"
	OpLoad    = "load"
	OpSave    = "save"
	OpReorder = "reorder"
	OpPublish = "publish"
	OpConsume = "consume"
)
