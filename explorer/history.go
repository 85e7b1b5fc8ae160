package explorer

// History returns the History view of the model, containing methods to
// manipulate the undo/redo history.
func (m *Model) History() *HistoryModel { return (*HistoryModel)(m) }

type HistoryModel Model

// Undo returns an Action to undo the last change.
func (m *HistoryModel) Undo() Action { return MakeAction((*historyUndo)(m)) }

type historyUndo HistoryModel

func (m *historyUndo) Enabled() bool { return len(m.undoStack) > 0 }
func (m *historyUndo) Do() {
	m.redoStack = append(m.redoStack, m.d.Copy())
	if len(m.redoStack) > maxUndo {
		m.redoStack = m.redoStack[len(m.redoStack)-maxUndo:]
	}
	m.d = m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	(*HistoryModel)(m).restored()
}

// Redo returns an Action to redo the last undone change.
func (m *HistoryModel) Redo() Action { return MakeAction((*historyRedo)(m)) }

type historyRedo HistoryModel

func (m *historyRedo) Enabled() bool { return len(m.redoStack) > 0 }
func (m *historyRedo) Do() {
	m.undoStack = append(m.undoStack, m.d.Copy())
	if len(m.undoStack) > maxUndo {
		m.undoStack = m.undoStack[len(m.undoStack)-maxUndo:]
	}
	m.d = m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	(*HistoryModel)(m).restored()
}

func (m *HistoryModel) restored() {
	m.prevUndoKind = ""
	m.midi.forgetReleased(m.d.Selection)
	(*Model)(m).updateDerived(AllChanges)
}
