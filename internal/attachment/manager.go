package attachment

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"invest-portal/internal/blobstore"
	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/recordstore"

	"go.uber.org/zap"
)

// Manager couples blob writes and record writes for one collection.
//
// Blobs are written before the record that references them and deleted only
// after the record write that orphans them has committed. A failed record
// write removes the blobs written for it.
type Manager struct {
	records recordstore.Store
	blobs   blobstore.Store
	schema  Schema
	logger  *zap.Logger
}

func NewManager(records recordstore.Store, blobs blobstore.Store, schema Schema, logger *zap.Logger) *Manager {
	return &Manager{
		records: records,
		blobs:   blobs,
		schema:  schema,
		logger:  logger.With(zap.String("collection", schema.Collection)),
	}
}

func (m *Manager) Schema() Schema {
	return m.schema
}

func (m *Manager) Records() recordstore.Store {
	return m.records
}

// saved is a blob written during the current operation.
type saved struct {
	field Field
	ref   blobstore.AttachmentRef
}

// Check runs every check Create makes before its first write, without side effects.
func (m *Manager) Check(fields recordstore.Record, uploads Uploads) error {
	if fields == nil {
		fields = recordstore.Record{}
	}
	if err := m.validateRequired(fields, uploads, nil); err != nil {
		return err
	}
	if err := m.checkUploads(uploads); err != nil {
		return err
	}
	if err := m.checkSuppliedRefs(fields, nil); err != nil {
		return err
	}
	return m.checkNestedCounts(fields, nil, uploads)
}

// Create validates fields and uploads, writes the blobs, then persists the record.
func (m *Manager) Create(ctx context.Context, fields recordstore.Record, uploads Uploads) (recordstore.Record, error) {
	doc := fields.Clone()
	if doc == nil {
		doc = recordstore.Record{}
	}

	if err := m.Check(doc, uploads); err != nil {
		return nil, err
	}

	written, err := m.saveAll(ctx, uploads)
	if err != nil {
		return nil, err
	}

	m.merge(doc, nil, written, nil)

	rec, err := m.records.Create(ctx, doc)
	if err != nil {
		m.rollback(written)
		return nil, apperrors.Wrap(apperrors.KindStoreWrite, "Failed to save "+m.schema.entity(), err)
	}
	return rec, nil
}

// Update applies fields, new uploads and explicit clears to the record with id.
// Old blobs no longer referenced are deleted after the update commits.
func (m *Manager) Update(ctx context.Context, id string, fields recordstore.Record, uploads Uploads, clears []string) (recordstore.Record, error) {
	updated, _, err := m.Replace(ctx, id, fields, uploads, clears)
	return updated, err
}

// Replace is Update that also returns the record as it was before the write.
func (m *Manager) Replace(ctx context.Context, id string, fields recordstore.Record, uploads Uploads, clears []string) (recordstore.Record, recordstore.Record, error) {
	set := fields.Clone()
	if set == nil {
		set = recordstore.Record{}
	}
	delete(set, "_id")

	if err := m.checkUploads(uploads); err != nil {
		return nil, nil, err
	}
	clearFields, err := m.resolveClears(clears)
	if err != nil {
		return nil, nil, err
	}

	old, err := m.records.FindByID(ctx, id)
	if err != nil {
		return nil, nil, m.notFoundOr(err)
	}

	if err := m.validateRequired(set, uploads, old); err != nil {
		return nil, nil, err
	}
	for _, f := range clearFields {
		if f.Required && len(uploads[f.formKey()]) == 0 {
			return nil, nil, apperrors.ValidationFields(map[string]string{f.Name: "This field is required"})
		}
	}
	if err := m.checkSuppliedRefs(set, old); err != nil {
		return nil, nil, err
	}
	if err := m.checkNestedCounts(set, old, uploads); err != nil {
		return nil, nil, err
	}

	written, err := m.saveAll(ctx, uploads)
	if err != nil {
		return nil, nil, err
	}

	m.merge(set, old, written, clearFields)

	updated, err := m.records.Update(ctx, id, set)
	if err != nil {
		m.rollback(written)
		if errors.Is(err, recordstore.ErrNotFound) {
			return nil, nil, apperrors.NotFound(m.schema.entity())
		}
		return nil, nil, apperrors.Wrap(apperrors.KindStoreWrite, "Failed to update "+m.schema.entity(), err)
	}

	keep := toSet(m.OwnedRefs(updated))
	var stale []string
	for _, p := range m.OwnedRefs(old) {
		if _, ok := keep[p]; !ok {
			stale = append(stale, p)
		}
	}
	m.deleteBestEffort(stale)

	return updated, old, nil
}

// Delete removes the record, then every blob it referenced. It returns the removed record.
func (m *Manager) Delete(ctx context.Context, id string) (recordstore.Record, error) {
	old, err := m.records.FindByID(ctx, id)
	if err != nil {
		return nil, m.notFoundOr(err)
	}

	deleted, err := m.records.Delete(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindStoreWrite, "Failed to delete "+m.schema.entity(), err)
	}
	if !deleted {
		return nil, apperrors.NotFound(m.schema.entity())
	}

	m.deleteBestEffort(m.OwnedRefs(old))
	return old, nil
}

// Discard deletes blobs that the caller knows are unreferenced, such as those of
// a record removed through another path.
func (m *Manager) Discard(refs []string) {
	m.deleteBestEffort(refs)
}

// OwnedRefs lists every reference path in rec that points into the Blob Store.
func (m *Manager) OwnedRefs(rec recordstore.Record) []string {
	var refs []string
	for _, p := range m.Refs(rec) {
		if m.blobs.Owns(p) {
			refs = append(refs, p)
		}
	}
	return refs
}

// Refs lists every non-empty reference in rec's attachment fields.
func (m *Manager) Refs(rec recordstore.Record) []string {
	if rec == nil {
		return nil
	}
	var refs []string
	for _, f := range m.schema.Fields {
		switch f.Kind {
		case Single:
			if s, ok := rec[f.Name].(string); ok && s != "" {
				refs = append(refs, s)
			}
		case List:
			for _, v := range toList(rec[f.Name]) {
				if s, ok := v.(string); ok && s != "" {
					refs = append(refs, s)
				}
			}
		case Nested:
			for _, item := range toItems(rec[f.Name]) {
				if s, ok := item[f.Item].(string); ok && s != "" {
					refs = append(refs, s)
				}
			}
		}
	}
	return refs
}

func (m *Manager) notFoundOr(err error) error {
	if errors.Is(err, recordstore.ErrNotFound) {
		return apperrors.NotFound(m.schema.entity())
	}
	return apperrors.Wrap(apperrors.KindStoreWrite, "Failed to load "+m.schema.entity(), err)
}

// validateRequired checks required scalars and required attachments. On update
// (old != nil) only fields present in doc are checked.
func (m *Manager) validateRequired(doc recordstore.Record, uploads Uploads, old recordstore.Record) error {
	missing := map[string]string{}

	for _, name := range m.schema.Required {
		v, present := doc[name]
		if old != nil && !present {
			continue
		}
		if isEmpty(v) {
			missing[name] = "This field is required"
		}
	}

	for _, f := range m.schema.Fields {
		if !f.Required || len(uploads[f.formKey()]) > 0 {
			continue
		}
		v, present := doc[f.Name]
		if old != nil && !present {
			continue
		}
		if isEmpty(v) {
			missing[f.Name] = "This field is required"
		}
	}

	if len(missing) > 0 {
		return apperrors.ValidationFields(missing)
	}
	return nil
}

func (m *Manager) checkUploads(uploads Uploads) error {
	for key, files := range uploads {
		if len(files) == 0 {
			continue
		}
		f, ok := m.schema.fieldByForm(key)
		if !ok {
			return apperrors.ValidationFields(map[string]string{key: "Unexpected file field"})
		}
		if len(files) > f.maxCount() {
			return apperrors.ValidationFields(map[string]string{
				key: fmt.Sprintf("At most %d file(s) allowed", f.maxCount()),
			})
		}
		for _, up := range files {
			if err := f.Filter.Check(key, up); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkSuppliedRefs stops a client from pointing a record at a blob it does not own.
func (m *Manager) checkSuppliedRefs(doc recordstore.Record, old recordstore.Record) error {
	allowed := toSet(m.Refs(old))
	supplied := recordstore.Record{}
	for _, f := range m.schema.Fields {
		if v, ok := doc[f.Name]; ok {
			supplied[f.Name] = v
		}
	}
	for _, p := range m.Refs(supplied) {
		if _, ok := allowed[p]; ok {
			continue
		}
		if m.blobs.Owns(p) || !validRef(p) {
			return apperrors.Validation("Invalid attachment reference: " + p)
		}
	}
	return nil
}

func (m *Manager) checkNestedCounts(doc, old recordstore.Record, uploads Uploads) error {
	for _, f := range m.schema.Fields {
		if f.Kind != Nested {
			continue
		}
		n := len(uploads[f.formKey()])
		if n == 0 {
			continue
		}
		items := nestedBase(f, doc, old)
		if n > len(items) {
			return apperrors.ValidationFields(map[string]string{
				f.formKey(): fmt.Sprintf("%d file(s) supplied for %d %s item(s)", n, len(items), f.Name),
			})
		}
	}
	return nil
}

func (m *Manager) resolveClears(clears []string) ([]Field, error) {
	var out []Field
	seen := map[string]bool{}
	for _, name := range clears {
		f, ok := m.schema.fieldByName(name)
		if !ok {
			return nil, apperrors.ValidationFields(map[string]string{name: "Not an attachment field"})
		}
		if !seen[f.Name] {
			seen[f.Name] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// saveAll writes every upload in schema order; on failure the blobs already
// written are removed.
func (m *Manager) saveAll(ctx context.Context, uploads Uploads) ([]saved, error) {
	var written []saved
	for _, f := range m.schema.Fields {
		for _, up := range uploads[f.formKey()] {
			ref, err := m.saveOne(ctx, up)
			if err != nil {
				m.rollback(written)
				return nil, apperrors.Wrap(apperrors.KindBlobWrite, "Failed to store "+f.formKey(), err)
			}
			written = append(written, saved{field: f, ref: ref})
		}
	}
	return written, nil
}

func (m *Manager) saveOne(ctx context.Context, up Upload) (blobstore.AttachmentRef, error) {
	rc, err := up.Open()
	if err != nil {
		return blobstore.AttachmentRef{}, err
	}
	defer rc.Close()
	return m.blobs.Save(ctx, m.schema.Category, rc, up.Filename)
}

// merge writes the new refs and clears into doc. old is nil on create.
func (m *Manager) merge(doc, old recordstore.Record, written []saved, clears []Field) {
	for _, f := range clears {
		switch f.Kind {
		case Single:
			doc[f.Name] = ""
			if f.SizeField != "" {
				doc[f.SizeField] = int64(0)
			}
		case List:
			doc[f.Name] = []any{}
		case Nested:
			items := nestedBase(f, doc, old)
			for _, item := range items {
				item[f.Item] = ""
			}
			doc[f.Name] = itemsToList(items)
		}
	}

	byField := map[string][]blobstore.AttachmentRef{}
	for _, w := range written {
		byField[w.field.Name] = append(byField[w.field.Name], w.ref)
	}

	for _, f := range m.schema.Fields {
		refs := byField[f.Name]
		if len(refs) == 0 {
			continue
		}
		switch f.Kind {
		case Single:
			doc[f.Name] = refs[len(refs)-1].ReferencePath
			if f.SizeField != "" {
				doc[f.SizeField] = refs[len(refs)-1].SizeBytes
			}
		case List:
			var base []any
			if v, ok := doc[f.Name]; ok {
				base = toList(v)
			} else if old != nil {
				base = toList(old[f.Name])
			}
			list := append([]any{}, base...)
			for _, r := range refs {
				list = append(list, r.ReferencePath)
			}
			doc[f.Name] = list
		case Nested:
			items := nestedBase(f, doc, old)
			for i, r := range refs {
				items[i][f.Item] = r.ReferencePath
			}
			doc[f.Name] = itemsToList(items)
		}
	}
}

func (m *Manager) rollback(written []saved) {
	for _, w := range written {
		if err := m.blobs.Delete(context.Background(), w.ref.ReferencePath); err != nil {
			m.logger.Error("Failed to roll back blob",
				zap.String("kind", string(apperrors.KindBlobDelete)),
				zap.String("path", w.ref.ReferencePath),
				zap.Error(err))
			continue
		}
		m.logger.Debug("Rolled back blob", zap.String("path", w.ref.ReferencePath))
	}
}

func (m *Manager) deleteBestEffort(paths []string) {
	for _, p := range paths {
		if err := m.blobs.Delete(context.Background(), p); err != nil {
			m.logger.Warn("Failed to delete blob",
				zap.String("kind", string(apperrors.KindBlobDelete)),
				zap.String("path", p),
				zap.Error(err))
		}
	}
}

// nestedBase returns a mutable copy of the items a nested field merges into:
// the supplied list when present, otherwise the stored one.
func nestedBase(f Field, doc, old recordstore.Record) []map[string]any {
	if v, ok := doc[f.Name]; ok {
		return toItems(v)
	}
	if old != nil {
		return toItems(old[f.Name])
	}
	return nil
}

func toList(v any) []any {
	switch t := recordstore.Normalize(v).(type) {
	case []any:
		return t
	case string:
		if t == "" {
			return nil
		}
		return []any{t}
	default:
		return nil
	}
}

func toItems(v any) []map[string]any {
	var items []map[string]any
	for _, e := range toList(v) {
		if m, ok := e.(map[string]any); ok {
			items = append(items, m)
		}
	}
	return items
}

func itemsToList(items []map[string]any) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	default:
		return false
	}
}

// validRef accepts the references a client may supply itself: absolute http(s) URLs.
func validRef(p string) bool {
	u, err := url.Parse(p)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
