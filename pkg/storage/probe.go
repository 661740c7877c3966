package storage

// probeKey is the sentinel written and removed by Probe.
const probeKey = "__proxy-storage__"

// Availability reports, per kind, whether the mechanism passed its probe.
type Availability map[Kind]bool

// Clone returns a copy that callers may modify freely.
func (a Availability) Clone() Availability {
	out := make(Availability, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Probe performs a real write followed by a delete through m and reports
// whether both succeeded. It never consults cached results. A panic raised
// by a binding counts as a failure.
func Probe(m Mechanism) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	if err := m.SetItem(probeKey, probeKey, nil); err != nil {
		return false
	}
	if err := m.RemoveItem(probeKey, nil); err != nil {
		return false
	}
	return true
}

// ProbeAll probes every mechanism in r. Memory is reported available
// without probing.
func ProbeAll(r *Registry) Availability {
	avail := Availability{Memory: true}
	for _, k := range r.Kinds() {
		if k == Memory {
			continue
		}
		m, err := r.Mechanism(k)
		if err != nil {
			avail[k] = false
			continue
		}
		avail[k] = Probe(m)
	}
	return avail
}
