package memory

// DefaultShards is the default number of repository shards.
const DefaultShards = 32

// Option configures a Service.
type Option func(*Service)

// WithShards sets the shard count, rounded up to a power of two.
func WithShards(count int) Option {
	return func(s *Service) {
		s.shardCount = count
	}
}
