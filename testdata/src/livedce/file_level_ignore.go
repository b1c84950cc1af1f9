// livedce:ignore
package livedce

func fileIgnored(a, b int) {
	_ = a + b
}
