// Package backend collects the DDL shared by every execution backend
// for the two side tables persisted state depends on: texts (the
// interning table) and table_list (the registry's persisted mirror).
// Both internal/backend/mysqlbackend and internal/backend/stdoutbackend
// render these statements verbatim so the two backends agree on schema.
package backend

// TextsDDL creates the interned-text table, keyed by its unique value so
// intern_text can resolve an existing row instead of inserting a
// duplicate.
const TextsDDL = "CREATE TABLE IF NOT EXISTS `texts` (`id` INT AUTO_INCREMENT PRIMARY KEY, `value` VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL, UNIQUE KEY `value_unique` (`value`)) ENGINE=Aria"

// TableListDDL creates the persisted table_list mirror the registry
// rehydrates from on restart.
const TableListDDL = "CREATE TABLE IF NOT EXISTS `table_list` (`name` VARCHAR(64) PRIMARY KEY, `def` JSON NOT NULL) ENGINE=Aria"
