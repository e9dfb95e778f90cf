package inventory

import "github.com/shopspring/decimal"

// CostCalculator implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum).Round(4)
}

// Valuation es el estado valorizado de un par producto/bodega después de una entrada de kardex.
type Valuation struct {
	AverageCost  decimal.Decimal
	BalanceValue decimal.Decimal
}

// ValueInflow recalcula el promedio cuando entran cantEntrada unidades a costoEntrada.
// prevQty es el saldo antes de la entrada y prevAvg el promedio vigente.
func ValueInflow(prevQty int64, prevAvg decimal.Decimal, cantEntrada int64, costoEntrada decimal.Decimal) Valuation {
	avg := CostCalculator(decimal.NewFromInt(prevQty), prevAvg, decimal.NewFromInt(cantEntrada), costoEntrada)
	newQty := prevQty + cantEntrada
	return Valuation{AverageCost: avg, BalanceValue: avg.Mul(decimal.NewFromInt(newQty)).Round(2)}
}

// ValueOutflow mantiene el promedio: las salidas no cambian el costo unitario vigente.
func ValueOutflow(newQty int64, prevAvg decimal.Decimal) Valuation {
	return Valuation{AverageCost: prevAvg, BalanceValue: prevAvg.Mul(decimal.NewFromInt(newQty)).Round(2)}
}
