package inventory

// LockOrder devuelve las bodegas en el orden fijo en que deben bloquearse sus filas
// de inventario (ID ascendente). Dos traslados opuestos entre el mismo par de
// bodegas adquieren los bloqueos en el mismo orden y no se interbloquean.
func LockOrder(warehouseA, warehouseB string) (first, second string) {
	if warehouseA <= warehouseB {
		return warehouseA, warehouseB
	}
	return warehouseB, warehouseA
}
