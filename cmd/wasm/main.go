//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/VergilAI/brand-book-sub003/internal/engine"
)

var eng *engine.Engine

func main() {
	eng = engine.NewEngine(engine.DefaultOptions())

	// Create the engine API object
	editor := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	editor.Set("loadDocument", js.FuncOf(loadDocument))
	editor.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	editor.Set("newDocument", js.FuncOf(newDocument))
	editor.Set("handleEvent", js.FuncOf(handleEvent))
	editor.Set("setTool", js.FuncOf(setTool))
	editor.Set("setShowGrid", js.FuncOf(setShowGrid))
	editor.Set("applyOperation", js.FuncOf(applyOperation))

	// --- Queries (frontend ← backend) ---
	editor.Set("render", js.FuncOf(render))
	editor.Set("hitTest", js.FuncOf(hitTest))
	editor.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	editor.Set("getDocument", js.FuncOf(getDocument))
	editor.Set("getSelection", js.FuncOf(getSelection))
	editor.Set("getState", js.FuncOf(getState))

	// Register on global scope
	js.Global().Set("vectorEditor", editor)

	// Signal that WASM is ready
	js.Global().Set("vectorEditorReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func result(err error) interface{} {
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// --- Command Handlers ---

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing document JSON"})
	}
	return result(eng.LoadDocument(args[0].String()))
}

func loadSampleDocument(this js.Value, args []js.Value) interface{} {
	name := "Sample"
	if len(args) > 0 && args[0].Type() == js.TypeString {
		name = args[0].String()
	}
	eng.LoadSampleDocument(name)
	return result(nil)
}

func newDocument(this js.Value, args []js.Value) interface{} {
	name := "Untitled"
	if len(args) > 0 && args[0].Type() == js.TypeString {
		name = args[0].String()
	}
	eng.NewDocument(name)
	return result(nil)
}

// handleEvent takes the event as a JSON string in the interaction.Event
// shape and returns the new draw commands.
func handleEvent(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf("[]")
	}
	if err := eng.HandleJSON([]byte(args[0].String())); err != nil {
		return result(err)
	}
	return js.ValueOf(eng.Render())
}

func setTool(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing tool"})
	}
	return result(eng.SetTool(args[0].String()))
}

func setShowGrid(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetShowGrid(args[0].Bool())
	return nil
}

func applyOperation(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing operation JSON"})
	}
	return result(eng.ApplyOperationJSON([]byte(args[0].String())))
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Render())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(eng.HitTest(args[0].Float(), args[1].Float()))
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSelectionBounds())
}

func getDocument(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetDocument())
}

func getSelection(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSelection())
}

func getState(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetState())
}
