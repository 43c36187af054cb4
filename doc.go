package uxtree

// Package uxtree provides:
//
// - A unified, diff-aware editor tree merged from a display schema and an optional data schema (Build)
// - The inverse projection back to a canonical display schema with addable-node pruning (Generate)
// - Pure, path-addressed tree mutations with structural sharing (UpdateAnnotation and friends)
// - Text-range correlation from a tree path to a line/column range in serialized JSON (Locate)
// - An editor sync controller reconciling prop updates, inspector edits, and raw text edits (Controller)
//
// Design policy:
// - Keep only public APIs in the root package; the schema document model lives under schema/.
// - Core operations never return errors for malformed-but-navigable input; they degrade to defaults.
// - Only JSON/YAML parse failures surface, and the controller converts those into state.
//
// Typical usage:
//
//	display, err := schema.ParseJSON(raw)
//	tree := uxtree.Build(display, dataSchema)
//	tree = uxtree.UpdateAnnotation(tree, "items.[items]", patch)
//	out := uxtree.Generate(tree)
//
//	c := uxtree.NewController(display, dataSchema, uxtree.ControllerOpt{OnChange: push})
//	defer c.Close()
