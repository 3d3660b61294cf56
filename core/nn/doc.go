// Package nn implements a small reverse-mode automatic differentiation tape
// over gonum dense matrices, together with the Adam optimizer used to train
// the recurrent predictor. Operations record their backward closures on the
// tape during the forward pass; Backward replays them in reverse order.
package nn
