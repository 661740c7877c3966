//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"
	"time"

	"github.com/yndnr/proxystore/pkg/proxystorage"
	"github.com/yndnr/proxystore/pkg/storage"
)

// funcs keeps exported callbacks alive for the lifetime of the page.
var funcs []js.Func

// fn wraps f as a JavaScript function. A failure is returned as an Error
// object since a Go callback cannot throw.
func fn(f func(args []js.Value) (any, error)) js.Func {
	jf := js.FuncOf(func(_ js.Value, args []js.Value) any {
		v, err := f(args)
		if err != nil {
			return js.Global().Get("Error").New(err.Error())
		}
		return v
	})
	funcs = append(funcs, jf)
	return jf
}

func arg(args []js.Value, i int) js.Value {
	if i < len(args) {
		return args[i]
	}
	return js.Undefined()
}

// export installs window.proxyStorage.
func export(p *proxystorage.Proxy) {
	obj := facadeObject(func() (*proxystorage.WebStorage, error) { return p.Default(), nil })

	obj.Set("get", fn(func([]js.Value) (any, error) {
		return string(p.Get()), nil
	}))
	obj.Set("set", fn(func(args []js.Value) (any, error) {
		kind, err := storage.ParseKind(arg(args, 0).String())
		if err != nil {
			return nil, err
		}
		return nil, p.Set(kind)
	}))
	obj.Set("isAvailable", fn(func([]js.Value) (any, error) {
		out := map[string]any{}
		for k, ok := range p.IsAvailable() {
			out[string(k)] = ok
		}
		return out, nil
	}))
	obj.Set("storage", fn(func(args []js.Value) (any, error) {
		kind, err := storage.ParseKind(arg(args, 0).String())
		if err != nil {
			return nil, err
		}
		return facadeObject(func() (*proxystorage.WebStorage, error) { return p.Storage(kind) }), nil
	}))
	obj.Set("interceptors", fn(func(args []js.Value) (any, error) {
		callback := arg(args, 1)
		if callback.Type() != js.TypeFunction {
			return nil, nil
		}
		p.Interceptors(proxystorage.Command(arg(args, 0).String()), func(key string, value any, extra ...any) any {
			jsArgs := []any{key, toJS(value)}
			for _, e := range extra {
				jsArgs = append(jsArgs, toJS(e))
			}
			return fromJS(callback.Invoke(jsArgs...))
		})
		return nil, nil
	}))

	js.Global().Set("proxyStorage", obj)
}

// facadeObject wraps the facade returned by resolve. resolve runs on every
// call so the default object follows proxyStorage.set.
func facadeObject(resolve func() (*proxystorage.WebStorage, error)) js.Value {
	obj := js.Global().Get("Object").New()

	obj.Set("setItem", fn(func(args []js.Value) (any, error) {
		ws, err := resolve()
		if err != nil {
			return nil, err
		}
		return nil, ws.SetItem(arg(args, 0).String(), fromJS(arg(args, 1)), optionsFromJS(arg(args, 2)))
	}))
	obj.Set("getItem", fn(func(args []js.Value) (any, error) {
		ws, err := resolve()
		if err != nil {
			return nil, err
		}
		var v any
		if arg(args, 1).Truthy() {
			v, err = ws.GetItemRaw(arg(args, 0).String())
		} else {
			v, err = ws.GetItem(arg(args, 0).String())
		}
		if err != nil {
			return nil, err
		}
		return toJS(v), nil
	}))
	obj.Set("removeItem", fn(func(args []js.Value) (any, error) {
		ws, err := resolve()
		if err != nil {
			return nil, err
		}
		return nil, ws.RemoveItem(arg(args, 0).String(), optionsFromJS(arg(args, 1)))
	}))
	obj.Set("clear", fn(func([]js.Value) (any, error) {
		ws, err := resolve()
		if err != nil {
			return nil, err
		}
		return nil, ws.Clear()
	}))
	obj.Set("keys", fn(func([]js.Value) (any, error) {
		ws, err := resolve()
		if err != nil {
			return nil, err
		}
		keys := ws.Keys()
		out := make([]any, len(keys))
		for i, k := range keys {
			out[i] = k
		}
		return out, nil
	}))
	obj.Set("length", fn(func([]js.Value) (any, error) {
		ws, err := resolve()
		if err != nil {
			return nil, err
		}
		return ws.Len(), nil
	}))
	return obj
}

// fromJS converts a JavaScript value into the Go shapes encoding/json
// produces. Strings stay strings; undefined and null become nil.
func fromJS(v js.Value) any {
	switch v.Type() {
	case js.TypeUndefined, js.TypeNull:
		return nil
	case js.TypeString:
		return v.String()
	case js.TypeBoolean:
		return v.Bool()
	case js.TypeNumber:
		return v.Float()
	}
	s := js.Global().Get("JSON").Call("stringify", v)
	if s.Type() != js.TypeString {
		return nil
	}
	var out any
	if err := json.Unmarshal([]byte(s.String()), &out); err != nil {
		return nil
	}
	return out
}

func toJS(v any) any {
	switch v.(type) {
	case nil, string, bool, float64:
		return v
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return js.Global().Get("JSON").Call("parse", string(b))
}

// optionsFromJS reads {path, domain, secure, expires}. expires is a Date
// or an object of calendar deltas {minutes, hours, days, months, years,
// date}.
func optionsFromJS(v js.Value) *storage.Options {
	if v.Type() != js.TypeObject {
		return nil
	}
	opts := &storage.Options{}
	if p := v.Get("path"); p.Type() == js.TypeString {
		opts.Path = p.String()
	}
	if d := v.Get("domain"); d.Type() == js.TypeString {
		opts.Domain = d.String()
	}
	opts.Secure = v.Get("secure").Truthy()

	exp := v.Get("expires")
	dateCtor := js.Global().Get("Date")
	switch {
	case exp.Type() != js.TypeObject:
	case exp.InstanceOf(dateCtor):
		opts.Expires = storage.At(time.UnixMilli(int64(exp.Call("getTime").Float())))
	default:
		e := &storage.Expiration{
			Minutes: intField(exp, "minutes"),
			Hours:   intField(exp, "hours"),
			Days:    intField(exp, "days"),
			Months:  intField(exp, "months"),
			Years:   intField(exp, "years"),
		}
		if d := exp.Get("date"); d.Type() == js.TypeObject && d.InstanceOf(dateCtor) {
			e.Date = time.UnixMilli(int64(d.Call("getTime").Float()))
		}
		opts.Expires = e
	}
	return opts
}

func intField(v js.Value, name string) int {
	if f := v.Get(name); f.Type() == js.TypeNumber {
		return f.Int()
	}
	return 0
}
