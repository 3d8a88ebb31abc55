package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/RoomCraft/internal/export"
	"github.com/piwi3910/RoomCraft/internal/importer"
	"github.com/piwi3910/RoomCraft/internal/model"
	"github.com/piwi3910/RoomCraft/internal/project"
)

// ─── Templates ─────────────────────────────────────────────

func (a *App) showSaveTemplateDialog() {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Template name")
	nameEntry.SetText(a.sess.ProjectName())

	form := dialog.NewForm("Save Template", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			outcome, err := a.sess.SaveTemplate(context.Background(), nameEntry.Text)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.rememberTemplate(outcome.Template.Name)
			dialog.ShowInformation("Template Saved", outcome.Message(), a.window)
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 160))
	form.Show()
}

// pickTemplate lets the user choose a saved template and calls onPick with
// its name.
func (a *App) pickTemplate(title, confirm string, onPick func(name string)) {
	templates := a.sess.ListTemplates(context.Background())
	if len(templates) == 0 {
		dialog.ShowInformation(title, "No templates saved yet.", a.window)
		return
	}
	names := templateNames(templates)
	sel := widget.NewSelect(names, nil)
	sel.SetSelected(names[0])
	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Template", sel),
		},
		func(ok bool) {
			if ok && sel.Selected != "" {
				onPick(sel.Selected)
			}
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 160))
	form.Show()
}

func (a *App) showLoadTemplateDialog() {
	a.pickTemplate("Open Template", "Open", a.loadTemplate)
}

func (a *App) loadTemplate(name string) {
	if err := a.sess.LoadTemplate(context.Background(), name); err != nil {
		if errors.Is(err, project.ErrTemplateNotFound) {
			err = fmt.Errorf("template %q no longer exists", name)
		}
		dialog.ShowError(err, a.window)
		return
	}
	a.rememberTemplate(name)
}

func (a *App) showRemoveTemplateDialog() {
	a.pickTemplate("Remove Template", "Remove", func(name string) {
		dialog.ShowConfirm("Remove Template",
			fmt.Sprintf("Remove template %q? The current design is not affected.", name),
			func(ok bool) {
				if !ok {
					return
				}
				if err := a.sess.RemoveTemplate(context.Background(), name); err != nil {
					dialog.ShowError(err, a.window)
					return
				}
				a.forgetTemplate(name)
			}, a.window)
	})
}

func (a *App) rememberTemplate(name string) {
	a.prefs.AddRecent(name)
	a.savePrefs()
	a.SetupMenus()
}

func (a *App) forgetTemplate(name string) {
	kept := a.prefs.RecentTemplates[:0]
	for _, n := range a.prefs.RecentTemplates {
		if n != name {
			kept = append(kept, n)
		}
	}
	a.prefs.RecentTemplates = kept
	a.savePrefs()
	a.SetupMenus()
}

// ─── Import ────────────────────────────────────────────────

func (a *App) importPlacements() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		result, ok := importByExtension(path)
		if !ok {
			dialog.ShowError(fmt.Errorf("unsupported file type %q", filepath.Ext(path)), a.window)
			return
		}
		a.handleImportResult(path, result)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".xlsx", ".xls", ".dxf"}))
	d.Show()
}

// importByExtension picks the reader for the file type.
func importByExtension(path string) (importer.ImportResult, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return importer.ImportCSV(path), true
	case ".xlsx", ".xls":
		return importer.ImportExcel(path), true
	case ".dxf":
		return importer.ImportDXF(path), true
	}
	return importer.ImportResult{}, false
}

// importProjectName names an imported design after its file unless the
// file carried a name.
func importProjectName(path string, result importer.ImportResult) string {
	if result.ProjectName != "" {
		return result.ProjectName
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func (a *App) handleImportResult(path string, result importer.ImportResult) {
	if len(result.Warnings) > 0 {
		a.log.Warn("import warnings", zap.String("file", path), zap.Strings("warnings", result.Warnings))
	}
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(errors.New(errorMsg), a.window)
	}
	if len(result.Imported) == 0 {
		return
	}

	a.sess.ReplaceScene(result.Scene, importProjectName(path, result))

	msg := fmt.Sprintf("Imported %d item(s).", len(result.Imported))
	if len(result.Errors) > 0 {
		msg += fmt.Sprintf("\n\nHowever, %d row(s) had errors and were skipped.", len(result.Errors))
	}
	if len(result.Warnings) > 0 {
		msg += fmt.Sprintf("\n\n%d warning(s) were logged.", len(result.Warnings))
	}
	dialog.ShowInformation("Import Complete", msg, a.window)
}

// ─── Export ────────────────────────────────────────────────

func (a *App) design() export.Design {
	return export.NewDesign(a.sess.ProjectName(), a.sess.Scene())
}

// saveAs asks for a destination and runs write on it.
func (a *App) saveAs(kind, ext string, write func(path string, d export.Design) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := write(path, a.design()); err != nil {
			a.log.Error("export failed", zap.String("kind", kind), zap.String("path", path), zap.Error(err))
			dialog.ShowError(err, a.window)
			return
		}
		a.log.Info("exported design", zap.String("kind", kind), zap.String("path", path))
		dialog.ShowInformation("Export Complete", fmt.Sprintf("%s saved to %s", kind, path), a.window)
	}, a.window)
	d.SetFileName(a.sess.ProjectName() + ext)
	d.SetFilter(storage.NewExtensionFileFilter([]string{ext}))
	d.Show()
}

func (a *App) exportPDF() {
	a.saveAs("PDF drawing set", ".pdf", export.ExportPDF)
}

func (a *App) exportDXF() {
	a.saveAs("DXF floor plan", ".dxf", export.ExportDXF)
}

func (a *App) exportSchedule() {
	a.saveAs("Placement schedule", ".xlsx", export.ExportSchedule)
}

func (a *App) exportGLB() {
	a.saveAs("3D model", ".glb", export.ExportGLB)
}

// ─── Backup ────────────────────────────────────────────────

func (a *App) backupTemplates() {
	if a.repo == nil {
		dialog.ShowError(errors.New("template storage is not available"), a.window)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		set, err := a.repo.Set(context.Background())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if err := project.ExportBackup(path, set, a.prefs); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Backup Complete",
			fmt.Sprintf("%d template(s) saved to %s", len(set.Templates), path), a.window)
	}, a.window)
	d.SetFileName("roomcraft-backup.json")
	d.Show()
}

func (a *App) restoreTemplates() {
	if a.repo == nil {
		dialog.ShowError(errors.New("template storage is not available"), a.window)
		return
	}
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		backup, err := project.ImportBackup(path)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		created, err := project.RestoreBackup(context.Background(), a.repo, backup)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		updated := len(backup.Templates.Templates) - created
		dialog.ShowInformation("Restore Complete",
			fmt.Sprintf("%d template(s) added, %d updated.", created, updated), a.window)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

// templateNames lists template names in storage order.
func templateNames(ts []model.Template) []string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.Name
	}
	return names
}
