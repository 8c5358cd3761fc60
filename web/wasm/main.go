//go:build js && wasm

package main

import (
	"context"
	"syscall/js"

	"github.com/cwbudde/algo-preamp/host/webaudio"
	"github.com/cwbudde/algo-preamp/preamp"
)

var (
	ctl   *preamp.Controller
	funcs []js.Func
)

func main() {
	api := js.Global().Get("Object").New()
	api.Set("attach", export(func(args []js.Value) any {
		if len(args) < 1 || args[0].Type() != js.TypeObject {
			return "attach: expected a media element"
		}
		ctl = preamp.NewController(webaudio.NewMedia(args[0]), webaudio.Host{})
		return js.Null()
	}))

	api.Set("init", export(func(args []js.Value) any {
		if ctl == nil {
			return false
		}
		ctl.Initialize()
		return ctl.Initialized()
	}))

	api.Set("setCustomFilter", export(func(args []js.Value) any {
		if ctl == nil || len(args) < 2 {
			return js.Null()
		}
		ctl.SetCustomFilter(args[0].Float(), args[1].Float())
		return js.Null()
	}))

	api.Set("updateEQ", export(func(args []js.Value) any {
		if ctl == nil || len(args) < 3 {
			return js.Null()
		}
		ctl.UpdateEQ(args[0].Float(), args[1].Float(), args[2].Bool())
		return js.Null()
	}))

	api.Set("play", export(func(args []js.Value) any {
		return promise(func() error {
			if ctl == nil {
				return preamp.ErrNoContext
			}
			return ctl.Play(context.Background())
		})
	}))

	api.Set("pause", export(func(args []js.Value) any {
		if ctl != nil {
			ctl.Pause()
		}
		return js.Null()
	}))

	api.Set("stop", export(func(args []js.Value) any {
		if ctl != nil {
			ctl.Stop()
		}
		return js.Null()
	}))

	api.Set("setVolume", export(func(args []js.Value) any {
		if ctl == nil || len(args) < 1 {
			return js.Null()
		}
		ctl.SetVolume(args[0].Float())
		return js.Null()
	}))

	api.Set("setBalance", export(func(args []js.Value) any {
		if ctl == nil || len(args) < 1 {
			return js.Null()
		}
		ctl.SetBalance(args[0].Float())
		return js.Null()
	}))

	api.Set("getLevels", export(func(args []js.Value) any {
		obj := js.Global().Get("Object").New()
		var lv preamp.Levels
		if ctl != nil {
			lv = ctl.Levels()
		}
		obj.Set("left", lv.Left)
		obj.Set("right", lv.Right)
		return obj
	}))

	api.Set("bands", export(func(args []js.Value) any {
		freqs := preamp.BandFrequencies()
		arr := js.Global().Get("Array").New(len(freqs))
		for i, f := range freqs {
			arr.SetIndex(i, f)
		}
		return arr
	}))

	js.Global().Set("AlgoPreamp", api)
	select {}
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}

// promise runs fn on its own goroutine, since it may block on other
// promises, and settles the returned Promise with its result.
func promise(fn func() error) js.Value {
	executor := js.FuncOf(func(_ js.Value, args []js.Value) any {
		resolve, reject := args[0], args[1]
		go func() {
			if err := fn(); err != nil {
				reject.Invoke(js.Global().Get("Error").New(err.Error()))
				return
			}
			resolve.Invoke()
		}()
		return nil
	})
	defer executor.Release()
	return js.Global().Get("Promise").New(executor)
}
