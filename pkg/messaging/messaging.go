package messaging

// Sender defines an interface for publishing execution results.
// This keeps the core package decoupled from specific implementations
// like Kafka.
type Sender interface {
	SendExecutionMessage(msg *ExecutionMessage) error
	Close() error
}

// ExecutionMessage is the outcome of one order submission: the trades it
// produced plus the taker's executed and remaining quantities.
type ExecutionMessage struct {
	OrderID      string
	ExecutedQty  string
	RemainingQty string
	Stored       bool
	Trades       []Trade
}

// Trade represents a single trade execution for one party
type Trade struct {
	ID       string
	OrderID  string
	Side     string
	Role     string
	Price    string
	Quantity string
}
