package simplehttp

func (r *Registry) active() Resolver {
	r.rwMutex.RLock()
	defer r.rwMutex.RUnlock()
	return r.resolver
}

func (r *Registry) register(resolver Resolver) Resolver {
	r.rwMutex.Lock()
	r.resolver = resolver
	r.rwMutex.Unlock()
	return resolver
}
