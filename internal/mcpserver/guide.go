package mcpserver

// GuideURI is the resource URI of the usage guide.
const GuideURI = "notepad://guide"

// UsageGuide explains the notepad model to LLM consumers.
const UsageGuide = `# Notepad Usage Guide

Notepad keeps a flat set of named plain-text notes and remembers which
note is currently open. Most editing tools act on the open note.

## Model

- **Names** are case-sensitive and unique. They may contain any
  characters but cannot be empty or whitespace only.
- **Content** is plain text. Empty content is valid.
- **The open note** is set by ` + "`create_note`" + ` and ` + "`open_note`" + `, and cleared by
  ` + "`delete_note`" + ` and ` + "`reset_selection`" + `.

## Workflow

1. ` + "`list_notes`" + ` to see what exists and which note is open.
2. ` + "`create_note`" + ` with a new name, or ` + "`open_note`" + ` with an existing one.
3. ` + "`update_note`" + ` to replace the whole content of the open note.
   There is no patching; always send the full text.
4. ` + "`delete_note`" + ` with ` + "`confirm: true`" + ` removes the open note.

Use ` + "`read_note`" + ` to look at a note without changing which one is open.

## Errors

- "Note name cannot be empty!": the name was blank.
- "Note name already exists!": pick another name or open the existing note.
- "note not found": the name does not exist; the selection was cleared.
- "no note selected": open or create a note first.
`
