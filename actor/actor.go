/*
 * MIT License
 *
 * Copyright (c) 2022-2025 Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package actor

// Actor is the state owned by one actor instance. Its operations are declared
// in a Protocol and only ever run on the actor's own loop, one at a time.
//
// Example:
//
//	type Greeter struct{ greeted int }
//
//	func (g *Greeter) Setup(*actor.Context) error   { return nil }
//	func (g *Greeter) Cleanup(*actor.Context) error { return nil }
//
//	func (g *Greeter) Greet(ctx *actor.Context, args actor.Args) (any, error) {
//	    whom, err := actor.ArgOf[string](args, "whom")
//	    if err != nil {
//	        return nil, err
//	    }
//	    g.greeted++
//	    return "Hello " + whom + "!", nil
//	}
//
//	var greeterProtocol = actor.MustProtocol("greeter",
//	    actor.Declare("greet", []string{"whom"}, (*Greeter).Greet))
type Actor interface {
	// Setup runs once on the actor's loop before any envelope is processed.
	// Returning an error prevents the actor from processing envelopes: it
	// is cleaned up and discarded.
	Setup(ctx *Context) error
	// Cleanup runs once on the actor's loop after it stopped processing
	// envelopes, including after a failed Setup.
	Cleanup(ctx *Context) error
}
