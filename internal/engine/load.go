package engine

// referenceTemp is the 16 degC heating threshold of the EN 14825 linear
// part-load model (formula 23).
const referenceTemp = 16.0

// PartLoadRatio computes pl(Tj) = (Tj - 16) / (Tdesignh - 16).
// The ratio exceeds 1 below the design temperature and goes negative
// above 16 degC; the standard's linear model is not clamped and
// downstream consumers must tolerate both.
func (c *Calculator) PartLoadRatio(temp float64) float64 {
	return (temp - referenceTemp) / (c.profile.DesignTemp - referenceTemp)
}

// HeatingLoad computes the absolute heating demand Ph(Tj) in kW for the
// resolved design load.
func (c *Calculator) HeatingLoad(temp float64) float64 {
	return c.designLoad * c.PartLoadRatio(temp)
}
