package chat

// resolver — выбор бэкенда истории по тарифу.
// Оба хранилища общие на процесс, коннекты инициализируются один раз в main.
type resolver struct {
	ephemeral HistoryStore
	durable   HistoryStore
}

func NewResolver(ephemeral, durable HistoryStore) StoreResolver {
	return &resolver{ephemeral: ephemeral, durable: durable}
}

func (r *resolver) Resolve(tier Tier) HistoryStore {
	if tier == TierDurable {
		return r.durable
	}
	return r.ephemeral
}
