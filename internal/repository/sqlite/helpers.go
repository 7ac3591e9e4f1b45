package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"reflect"

	"aasregistry/internal/domain"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// nullToBool converts sql.NullInt64 to bool (0 = false, non-zero = true)
func nullToBool(ni sql.NullInt64) bool {
	return ni.Valid && ni.Int64 != 0
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// boolToInt converts a flag to its INTEGER column value
func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// ============================================================================
// JSON Marshaling Helpers
// ============================================================================

// unmarshalJSONField safely unmarshals JSON from nullable string into target
func unmarshalJSONField(ns sql.NullString, target any) error {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(ns.String), target)
}

// marshalToNull marshals v to a nullable JSON string.
// Nil pointers and empty slices or maps are stored as NULL.
func marshalToNull(v any) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return sql.NullString{}, nil
		}
	case reflect.Slice, reflect.Map:
		if rv.Len() == 0 {
			return sql.NullString{}, nil
		}
	}

	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// ============================================================================
// Schema Evolution Guide
// ============================================================================
//
// To add a new column to the shells table:
// 1. Add a numbered migration under migrations/
// 2. Add field to shellRow struct (below)
// 3. Update scanArgs() - APPEND to end to match column order
// 4. Update shellColumns constant - APPEND to end
// 5. Update toDomain() and shellWriteArgs()
// 6. Update relevant tests
//
// CRITICAL: Column order must match between:
// - shellColumns constant
// - scanArgs() return slice
// - All SELECT queries using shellColumns
//
// Same pattern applies to submodels.

// ============================================================================
// Shell Row Scanner
// ============================================================================

// shellRow holds all columns from a shell query for scanning
type shellRow struct {
	PK                   int64
	IDKey                string
	ID                   string
	IDType               sql.NullString
	IDShort              sql.NullString
	DescriptionsJSON     sql.NullString
	DisplayNamesJSON     sql.NullString
	EndpointsJSON        sql.NullString
	GlobalAssetIDJSON    sql.NullString
	SpecificAssetIDsJSON sql.NullString
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match shellColumns order exactly:
// pk, id_key, id, id_type, id_short, descriptions, display_names,
// endpoints, global_asset_id, specific_asset_ids
func (r *shellRow) scanArgs() []any {
	return []any{
		&r.PK,                   // 1
		&r.IDKey,                // 2
		&r.ID,                   // 3
		&r.IDType,               // 4
		&r.IDShort,              // 5
		&r.DescriptionsJSON,     // 6
		&r.DisplayNamesJSON,     // 7
		&r.EndpointsJSON,        // 8
		&r.GlobalAssetIDJSON,    // 9
		&r.SpecificAssetIDsJSON, // 10
	}
}

// toDomain converts the scanned row to a domain.ShellDescriptor without its
// nested submodels, which live in their own rows.
func (r *shellRow) toDomain() (*domain.ShellDescriptor, error) {
	shell := &domain.ShellDescriptor{
		Identification: domain.Identifier{
			ID:     r.ID,
			IDType: domain.IdentifierType(nullToString(r.IDType)),
		},
		IDShort: nullToString(r.IDShort),
	}

	if err := unmarshalJSONField(r.DescriptionsJSON, &shell.Descriptions); err != nil {
		return nil, fmt.Errorf("unmarshal descriptions: %w", err)
	}
	if err := unmarshalJSONField(r.DisplayNamesJSON, &shell.DisplayNames); err != nil {
		return nil, fmt.Errorf("unmarshal display names: %w", err)
	}
	if err := unmarshalJSONField(r.EndpointsJSON, &shell.Endpoints); err != nil {
		return nil, fmt.Errorf("unmarshal endpoints: %w", err)
	}
	if r.GlobalAssetIDJSON.Valid && r.GlobalAssetIDJSON.String != "" {
		shell.GlobalAssetID = &domain.Reference{}
		if err := json.Unmarshal([]byte(r.GlobalAssetIDJSON.String), shell.GlobalAssetID); err != nil {
			return nil, fmt.Errorf("unmarshal global asset id: %w", err)
		}
	}
	if err := unmarshalJSONField(r.SpecificAssetIDsJSON, &shell.SpecificAssetIDs); err != nil {
		return nil, fmt.Errorf("unmarshal specific asset ids: %w", err)
	}

	return shell, nil
}

// shellColumns returns the SELECT column list for shell queries
const shellColumns = `pk, id_key, id, id_type, id_short, descriptions, display_names,
	endpoints, global_asset_id, specific_asset_ids`

// ============================================================================
// Submodel Row Scanner
// ============================================================================

// submodelRow holds all columns from a submodel query for scanning
type submodelRow struct {
	PK               int64
	ShellPK          sql.NullInt64
	Standalone       sql.NullInt64
	Position         int64
	IDKey            string
	ID               string
	IDType           sql.NullString
	IDShort          sql.NullString
	DescriptionsJSON sql.NullString
	DisplayNamesJSON sql.NullString
	EndpointsJSON    sql.NullString
	SemanticIDJSON   sql.NullString
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match submodelColumns order exactly:
// pk, shell_pk, standalone, position, id_key, id, id_type, id_short,
// descriptions, display_names, endpoints, semantic_id
func (r *submodelRow) scanArgs() []any {
	return []any{
		&r.PK,               // 1
		&r.ShellPK,          // 2
		&r.Standalone,       // 3
		&r.Position,         // 4
		&r.IDKey,            // 5
		&r.ID,               // 6
		&r.IDType,           // 7
		&r.IDShort,          // 8
		&r.DescriptionsJSON, // 9
		&r.DisplayNamesJSON, // 10
		&r.EndpointsJSON,    // 11
		&r.SemanticIDJSON,   // 12
	}
}

// isStandalone reports whether the row is a standalone submodel
func (r *submodelRow) isStandalone() bool {
	return nullToBool(r.Standalone)
}

// checkPlacement rejects a row whose placement differs from what the
// query selected for. A standalone row has no owner; a nested row has one.
func (r *submodelRow) checkPlacement(standalone bool) error {
	if r.isStandalone() != standalone {
		return fmt.Errorf("submodel %q: standalone flag is %t, want %t", r.ID, r.isStandalone(), standalone)
	}
	if r.ShellPK.Valid == standalone {
		return fmt.Errorf("submodel %q: owner does not match placement", r.ID)
	}
	return nil
}

// toDomain converts the scanned row to a domain.SubmodelDescriptor
func (r *submodelRow) toDomain() (*domain.SubmodelDescriptor, error) {
	sm := &domain.SubmodelDescriptor{
		Identification: domain.Identifier{
			ID:     r.ID,
			IDType: domain.IdentifierType(nullToString(r.IDType)),
		},
		IDShort: nullToString(r.IDShort),
	}

	if err := unmarshalJSONField(r.DescriptionsJSON, &sm.Descriptions); err != nil {
		return nil, fmt.Errorf("unmarshal descriptions: %w", err)
	}
	if err := unmarshalJSONField(r.DisplayNamesJSON, &sm.DisplayNames); err != nil {
		return nil, fmt.Errorf("unmarshal display names: %w", err)
	}
	if err := unmarshalJSONField(r.EndpointsJSON, &sm.Endpoints); err != nil {
		return nil, fmt.Errorf("unmarshal endpoints: %w", err)
	}
	if r.SemanticIDJSON.Valid && r.SemanticIDJSON.String != "" {
		sm.SemanticID = &domain.Reference{}
		if err := json.Unmarshal([]byte(r.SemanticIDJSON.String), sm.SemanticID); err != nil {
			return nil, fmt.Errorf("unmarshal semantic id: %w", err)
		}
	}

	return sm, nil
}

// submodelColumns returns the SELECT column list for submodel queries
const submodelColumns = `pk, shell_pk, standalone, position, id_key, id, id_type, id_short,
	descriptions, display_names, endpoints, semantic_id`

// ============================================================================
// Write Helpers
// ============================================================================

// shellWriteArgs prepares arguments for shell INSERT/UPDATE
// Returns: id_key, id, id_type, id_short, descriptions, display_names,
//          endpoints, global_asset_id, specific_asset_ids
func shellWriteArgs(idKey string, shell *domain.ShellDescriptor) ([]any, error) {
	descriptions, err := marshalToNull(shell.Descriptions)
	if err != nil {
		return nil, fmt.Errorf("marshal descriptions: %w", err)
	}
	displayNames, err := marshalToNull(shell.DisplayNames)
	if err != nil {
		return nil, fmt.Errorf("marshal display names: %w", err)
	}
	endpoints, err := marshalToNull(shell.Endpoints)
	if err != nil {
		return nil, fmt.Errorf("marshal endpoints: %w", err)
	}
	globalAssetID, err := marshalToNull(shell.GlobalAssetID)
	if err != nil {
		return nil, fmt.Errorf("marshal global asset id: %w", err)
	}
	specificAssetIDs, err := marshalToNull(shell.SpecificAssetIDs)
	if err != nil {
		return nil, fmt.Errorf("marshal specific asset ids: %w", err)
	}

	return []any{
		idKey,
		shell.ID(),
		stringToNull(string(shell.Identification.IDType)),
		stringToNull(shell.IDShort),
		descriptions,
		displayNames,
		endpoints,
		globalAssetID,
		specificAssetIDs,
	}, nil
}

// submodelWriteArgs prepares arguments for submodel INSERT
// Returns: shell_pk, standalone, position, id_key, id, id_type, id_short,
//          descriptions, display_names, endpoints, semantic_id
func submodelWriteArgs(shellPK sql.NullInt64, position int, idKey string, sm *domain.SubmodelDescriptor) ([]any, error) {
	descriptions, err := marshalToNull(sm.Descriptions)
	if err != nil {
		return nil, fmt.Errorf("marshal descriptions: %w", err)
	}
	displayNames, err := marshalToNull(sm.DisplayNames)
	if err != nil {
		return nil, fmt.Errorf("marshal display names: %w", err)
	}
	endpoints, err := marshalToNull(sm.Endpoints)
	if err != nil {
		return nil, fmt.Errorf("marshal endpoints: %w", err)
	}
	semanticID, err := marshalToNull(sm.SemanticID)
	if err != nil {
		return nil, fmt.Errorf("marshal semantic id: %w", err)
	}

	return []any{
		shellPK,
		boolToInt(!shellPK.Valid),
		position,
		idKey,
		sm.ID(),
		stringToNull(string(sm.Identification.IDType)),
		stringToNull(sm.IDShort),
		descriptions,
		displayNames,
		endpoints,
		semanticID,
	}, nil
}
