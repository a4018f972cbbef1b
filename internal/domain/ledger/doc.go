// Package ledger contiene las reglas puras del libro de órdenes: saneamiento numérico,
// construcción de líneas, cálculo de totales y la validación/aplicación de la
// finalización de una orden sobre el inventario.
//
// Nada aquí toca persistencia ni bloqueos; los casos de uso invocan estas funciones
// sobre un borrador del agregado dentro de una transacción del Workspace.
package ledger
